package handlers

import (
	"DentalSimple/middlewares"
	"DentalSimple/models"
	"DentalSimple/services"
	"DentalSimple/utils"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// currentOwner returns the signed-in user, answering 401 when there is none.
func currentOwner(c *gin.Context) (models.User, bool) {
	user, ok := middlewares.CurrentUser(c)
	if !ok {
		middlewares.HttpError(c, "not signed in", http.StatusUnauthorized, nil)
	}
	return user, ok
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		middlewares.HttpError(c, "invalid request body", http.StatusBadRequest, err)
		return false
	}
	return true
}

// parseDate accepts an empty value or a YYYY-MM-DD date.
func parseDate(name, value string) error {
	if value == "" {
		return nil
	}
	if _, err := time.Parse(services.DateLayout, value); err != nil {
		return fmt.Errorf("%w: %s must be YYYY-MM-DD", utils.ErrInvalidInput, name)
	}
	return nil
}
