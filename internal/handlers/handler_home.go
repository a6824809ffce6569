package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/simplefi_backend/internal/core/ports/services"
	"github.com/SscSPs/simplefi_backend/internal/dto"
	"github.com/gin-gonic/gin"
)

// getHome godoc
// @Summary Show the status of server.
// @Description get the status of server.
// @Tags root
// @Accept */*
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func getHome(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "SimpleFi Ledger API", "docs": "/swagger/index.html"})
}

// getHealth godoc
// @Summary Health check
// @Description Reports the database and language model status. Degraded dependencies do not fail the check.
// @Tags root
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func getHealth(healthService portssvc.HealthSvc) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, dto.HealthResponse{
			Status:   "healthy",
			Services: healthService.Check(c.Request.Context()),
		})
	}
}

func registerServiceRoutes(r *gin.Engine, healthService portssvc.HealthSvc) {
	r.GET("/", getHome)
	r.GET("/health", getHealth(healthService))
}
