package controllers

import (
	"errors"
	"log"
	"net/http"

	"backend/models"

	"github.com/gin-gonic/gin"
)

// respondError maps the failure taxonomy onto HTTP statuses so the client
// can keep its retry vs. not-found messaging distinct. Unclassified
// failures are logged server-side and answered with a generic message;
// their detail can embed upstream response bodies and DB errors.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrNetwork), errors.Is(err, models.ErrDecode):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
