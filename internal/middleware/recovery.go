package middleware

import (
	"net/http"

	"github.com/evsuite/chargepoint-server/internal/handlers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Recovery turns panics into the standard 500 envelope so that no raw error
// ever leaves the system.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Error().
					Interface("panic", rec).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")
				handlers.FailDetail(c, http.StatusInternalServerError, "A server error occurred.")
				c.Abort()
			}
		}()
		c.Next()
	}
}
