package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"
	"blogicum/views"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type AuthController struct {
	users        *services.UserService
	issuer       *utils.TokenIssuer
	render       *Renderer
	urls         utils.URLs
	cookieName   string
	secureCookie bool
	log          *zap.SugaredLogger
}

func NewAuthController(users *services.UserService, issuer *utils.TokenIssuer, render *Renderer, urls utils.URLs, cookieName string, secureCookie bool, log *zap.SugaredLogger) *AuthController {
	return &AuthController{
		users:        users,
		issuer:       issuer,
		render:       render,
		urls:         urls,
		cookieName:   cookieName,
		secureCookie: secureCookie,
		log:          log,
	}
}

func (ac *AuthController) RegisterForm(c *gin.Context) {
	ac.render.HTML(c, http.StatusOK, views.RegisterPage(ac.render.Props(c), models.RegisterRequest{}, nil))
}

func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		ac.render.HTML(c, http.StatusUnprocessableEntity, views.RegisterPage(ac.render.Props(c), req, fieldErrors(&req, err)))
		return
	}

	user, err := ac.users.CreateUser(c.Request.Context(), &req)
	if err != nil {
		if fields, ok := validationFields(err); ok {
			ac.render.HTML(c, http.StatusUnprocessableEntity, views.RegisterPage(ac.render.Props(c), req, fields))
			return
		}
		ac.render.Fail(c, err)
		return
	}

	if err := ac.startSession(c, user); err != nil {
		ac.render.Fail(c, err)
		return
	}

	ac.log.Infow("User registered", "user_id", user.ID, "username", user.Username)
	ac.render.Redirect(c, ac.urls.Profile(user.Username))
}

func (ac *AuthController) LoginForm(c *gin.Context) {
	ac.render.HTML(c, http.StatusOK, views.LoginPage(ac.render.Props(c), "", c.Query("next"), nil))
}

func (ac *AuthController) Login(c *gin.Context) {
	next := c.PostForm("next")

	var req models.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		ac.render.HTML(c, http.StatusUnprocessableEntity, views.LoginPage(ac.render.Props(c), req.Username, next, fieldErrors(&req, err)))
		return
	}

	user, err := ac.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidLogin) {
			errs := map[string]string{"__all__": "Please enter a correct username and password."}
			ac.render.HTML(c, http.StatusUnprocessableEntity, views.LoginPage(ac.render.Props(c), req.Username, next, errs))
			return
		}
		ac.render.Fail(c, err)
		return
	}

	if err := ac.startSession(c, user); err != nil {
		ac.render.Fail(c, err)
		return
	}

	ac.render.Redirect(c, ac.safeNext(next))
}

func (ac *AuthController) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookieName, "", -1, "/", "", ac.secureCookie, true)
	ac.render.Redirect(c, ac.urls.Index())
}

func (ac *AuthController) startSession(c *gin.Context, user *models.User) error {
	token, err := ac.issuer.Generate(user.ID)
	if err != nil {
		return errors.Wrap(err, "generate session token")
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ac.cookieName, token, int(ac.issuer.TTL().Seconds()), "/", "", ac.secureCookie, true)
	return nil
}

// safeNext only follows local absolute paths; anything else goes to the
// index.
func (ac *AuthController) safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, `\`) {
		return ac.urls.Index()
	}
	u, err := url.Parse(next)
	if err != nil || u.Scheme != "" || u.Host != "" {
		return ac.urls.Index()
	}
	return next
}
