package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with the middleware stack and all
// routes. Preflight OPTIONS requests are answered by the CORS middleware
// with 200, an empty body, and the permissive header set the browser
// clients expect; they never reach a handler.
func NewRouter(h *APIHandler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())   // Request logging middleware
	router.Use(gin.Recovery()) // Panic recovery middleware

	router.Use(cors.New(cors.Config{
		AllowAllOrigins:           true,
		AllowMethods:              []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:              []string{"authorization", "x-client-info", "apikey", "content-type"},
		OptionsResponseStatusCode: http.StatusOK,
	}))

	RegisterRoutes(router, h)
	return router
}

// RegisterRoutes sets up the API endpoints.
func RegisterRoutes(router *gin.Engine, h *APIHandler) {
	router.POST("/generate", h.GenerateWebsite)

	// Basic health endpoint to check if the service is running.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
