package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"clinical-trials-api/services"
	"clinical-trials-api/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ApplicationController serves the clinical trial application form.
type ApplicationController struct {
	Service *services.ApplicationService
	Log     *zap.Logger
}

// NewApplicationController wires the controller to its service.
func NewApplicationController(svc *services.ApplicationService, log *zap.Logger) *ApplicationController {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplicationController{Service: svc, Log: log}
}

// CreateApplication saves the entire form in one request
func (ac *ApplicationController) CreateApplication(c *gin.Context) {
	var payload services.FormPayload
	if !bindPayload(c, &payload) {
		return
	}

	application, err := ac.Service.Create(c.Request.Context(), &payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":       "Form saved successfully!",
		"applicationId": application.ID,
	})
}

// GetApplications returns every application joined with its sections
func (ac *ApplicationController) GetApplications(c *gin.Context) {
	records, err := ac.Service.List(c.Request.Context())
	if err != nil {
		ac.Log.Error("Error fetching application data", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, records)
}

// GetApplication returns a single application joined with its sections
func (ac *ApplicationController) GetApplication(c *gin.Context) {
	appID := utils.SanitizeInput(c.Param("appId"))

	record, err := ac.Service.Get(c.Request.Context(), appID)
	if errors.Is(err, services.ErrApplicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateApplication upserts the sections present in the body
func (ac *ApplicationController) UpdateApplication(c *gin.Context) {
	appID := utils.SanitizeInput(c.Param("appId"))

	var payload services.FormPayload
	if !bindPayload(c, &payload) {
		return
	}

	err := ac.Service.Update(c.Request.Context(), appID, &payload)
	if errors.Is(err, services.ErrApplicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Application not found."})
		return
	}
	if err != nil {
		ac.Log.Error("Error updating form", zap.String("application_id", appID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Form updated successfully!"})
}

// DeleteApplication removes an application and all of its sections
func (ac *ApplicationController) DeleteApplication(c *gin.Context) {
	appID := utils.SanitizeInput(c.Param("appId"))

	err := ac.Service.Delete(c.Request.Context(), appID)
	if errors.Is(err, services.ErrApplicationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Application not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Application and related data for id %s deleted successfully", appID),
	})
}

// bindPayload decodes the form body. An empty body is an empty form.
func bindPayload(c *gin.Context, payload *services.FormPayload) bool {
	if err := c.ShouldBindJSON(payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}
