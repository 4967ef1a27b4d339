package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/kimuray/pcs-gen/internal/models"
	"github.com/kimuray/pcs-gen/internal/service"

	"github.com/gin-gonic/gin"
)

// TownHandler handles postal code lookups against loaded tables
type TownHandler struct {
	service TownService
}

// TownService interface for dependency injection
type TownService interface {
	FindByZipCode(context.Context, string) ([]models.Town, error)
}

// NewTownHandler creates a new town handler
func NewTownHandler(svc TownService) *TownHandler {
	return &TownHandler{service: svc}
}

// FindByZipCode handles GET /towns/:zip requests
func (h *TownHandler) FindByZipCode(c *gin.Context) {
	towns, err := h.service.FindByZipCode(c.Request.Context(), c.Param("zip"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidZipCode) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "zip code must be 7 digits"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if len(towns) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "no towns found for the zip code"})
		return
	}

	c.JSON(http.StatusOK, towns)
}
