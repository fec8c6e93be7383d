package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shamsaravaiah/LYSYN/internal/models"
)

// PatientHandler serves the static patient list for the presentation layer.
type PatientHandler struct{}

func NewPatientHandler() *PatientHandler { return &PatientHandler{} }

func (h *PatientHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"patients": models.StaticPatients()})
}
