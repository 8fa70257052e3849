package handlers

import (
	"DentalSimple/middlewares"
	"DentalSimple/services"
	"DentalSimple/utils"
	"net/http"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	sessions *services.SessionService
}

func NewAuthHandler(sessions *services.SessionService) *AuthHandler {
	return &AuthHandler{sessions: sessions}
}

func (h *AuthHandler) SignUp(c *gin.Context) {
	var in utils.SignUpInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.sessions.SignUp(c.Request.Context(), in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	current, signedIn := h.sessions.Current()
	signedIn = signedIn && current.ID == user.ID
	middlewares.RespondJSON(c, gin.H{"user": user, "signed_in": signedIn}, http.StatusCreated)
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var in utils.SignInInput
	if !bindJSON(c, &in) {
		return
	}
	user, err := h.sessions.SignIn(c.Request.Context(), in)
	if err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"user": user}, http.StatusOK)
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.sessions.SignOut(c.Request.Context()); err != nil {
		middlewares.RespondError(c, err)
		return
	}
	middlewares.RespondJSON(c, gin.H{"message": "signed out"}, http.StatusOK)
}

// Session reports the current user, or null when signed out.
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := h.sessions.Current()
	if !ok {
		middlewares.RespondJSON(c, gin.H{"user": nil}, http.StatusOK)
		return
	}
	middlewares.RespondJSON(c, gin.H{"user": user}, http.StatusOK)
}
