package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// startWebServer runs the keep-alive HTTP server the hosting platform
// pings, plus the metrics and stats endpoints.
func startWebServer() {
	gin.SetMode(gin.ReleaseMode)
	router := gin.Default()

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Bot is running...")
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// The stats endpoint only exists when credentials are configured.
	username := os.Getenv("BASIC_AUTH_USERNAME")
	password := os.Getenv("BASIC_AUTH_PASSWORD")
	if username != "" && password != "" {
		authed := router.Group("/", gin.BasicAuth(gin.Accounts{username: password}))
		authed.GET("/stats", func(c *gin.Context) {
			c.JSON(http.StatusOK, counters.Snapshot())
		})
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Println("Starting web server on :" + port)
	if err := router.Run(":" + port); err != nil {
		log.Printf("Failed to start web server: %v", err)
	}
}
