package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler recovers panics, logs them, and lets onError write the
// response.
func ErrorHandler(log *zap.SugaredLogger, onError func(c *gin.Context)) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Errorw("Panic recovered",
			"panic", recovered,
			"path", c.Request.URL.Path,
			"request_id", c.GetString(requestIDKey),
		)
		if onError != nil {
			onError(c)
			c.Abort()
			return
		}
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
