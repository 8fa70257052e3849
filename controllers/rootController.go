package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func rootHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"service": "dentalsimple", "status": "ok"})
}

// SetupRootRoute registers the liveness route and the metrics endpoint.
func SetupRootRoute(router *gin.Engine, metrics gin.HandlerFunc) {
	router.GET("/", rootHandler)
	if metrics != nil {
		router.GET("/metrics", metrics)
	}
}
