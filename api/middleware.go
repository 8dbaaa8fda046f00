package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/api/handlers"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/services/session"
	"github.com/rs/cors"
)

const (
	SessionCookie = "docregistry_session"
	HeaderSession = "X-Session-ID"
)

func loggingMiddleware(logger logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Info("request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status())
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	handler := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Accept", HeaderSession},
		ExposedHeaders:   []string{HeaderSession},
	})

	return func(c *gin.Context) {
		handler.HandlerFunc(c.Writer, c.Request)

		if c.Request.Method == http.MethodOptions && c.Request.Header.Get("Access-Control-Request-Method") != "" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// sessionMiddleware attaches the caller's consult view to the request. The
// session id is read from the cookie first, then the header, and is echoed
// back in both.
func sessionMiddleware(sessions *session.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(SessionCookie)
		if err != nil || id == "" {
			id = c.GetHeader(HeaderSession)
		}

		id, view := sessions.Get(c.Request.Context(), id)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
		c.Header(HeaderSession, id)
		c.Set(handlers.ContextKeyView, view)

		c.Next()
	}
}
