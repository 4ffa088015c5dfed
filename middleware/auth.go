package middleware

import (
	"net/http"
	"strings"

	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const actorKey = "actor"

// LoadActor resolves the session cookie (or a Bearer token) to a user and
// stores it in the context. Anonymous requests pass through untouched.
func LoadActor(issuer *utils.TokenIssuer, users *services.UserService, cookieName string, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := requestToken(c, cookieName)
		if token == "" {
			c.Next()
			return
		}

		userID, err := issuer.Validate(token)
		if err != nil {
			log.Debugw("Token validation failed", "error", err)
			clearSessionCookie(c, cookieName)
			c.Next()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), userID)
		if err != nil {
			log.Debugw("Session user not found", "user_id", userID, "error", err)
			clearSessionCookie(c, cookieName)
			c.Next()
			return
		}

		c.Set(actorKey, user)
		c.Next()
	}
}

func requestToken(c *gin.Context, cookieName string) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	if websocket.IsWebSocketUpgrade(c.Request) {
		if token := c.Query("token"); token != "" {
			return token
		}
	}
	if cookie, err := c.Cookie(cookieName); err == nil {
		return cookie
	}
	return ""
}

func clearSessionCookie(c *gin.Context, cookieName string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
}

// CurrentActor returns the signed-in user or nil.
func CurrentActor(c *gin.Context) *models.User {
	v, ok := c.Get(actorKey)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}

// LoginRequired sends anonymous requests to the login page, remembering
// where they were going.
func LoginRequired(urls utils.URLs) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentActor(c) == nil {
			c.Redirect(http.StatusSeeOther, urls.LoginNext(c.Request.URL.RequestURI()))
			c.Abort()
			return
		}
		c.Next()
	}
}
