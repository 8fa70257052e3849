package controllers

import (
	"DentalSimple/handlers"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Handler *handlers.AuthHandler
}

// NewAuthController creates a new AuthController with the given AuthHandler
func NewAuthController(authHandler *handlers.AuthHandler) *AuthController {
	return &AuthController{
		Handler: authHandler,
	}
}

// RegisterRoutes registers the sign-up, sign-in and sign-out routes. None of
// them needs an active session.
func (ac *AuthController) RegisterRoutes(router *gin.Engine) {
	auth := router.Group("/auth")
	{
		auth.POST("/sign-up", ac.Handler.SignUp)
		auth.POST("/sign-in", ac.Handler.SignIn)
		auth.POST("/sign-out", ac.Handler.SignOut)
		auth.GET("/session", ac.Handler.Session)
	}
}
