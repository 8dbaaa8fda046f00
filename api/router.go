package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/meghashyamc/docregistry/api/handlers"
	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/services/report"
	"github.com/meghashyamc/docregistry/services/session"
	"github.com/meghashyamc/docregistry/validation"
)

func setupRoutes(router *gin.Engine, logger logger.Logger, sessions *session.Registry, reports *report.Service, validator *validation.Validator) {
	router.GET("/health", health())

	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/documents")
	})

	views := router.Group("", sessionMiddleware(sessions))

	handlers.SetupDocuments(views, logger, reports, validator)
	handlers.SetupClients(views, logger, validator)
	handlers.SetupDialog(views, logger, validator)
}

func health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	}
}

func newRouter(allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(corsMiddleware(allowedOrigins))
	router.Use(gin.Recovery())

	return router
}
