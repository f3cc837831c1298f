package controllers

import (
	"net/http"
	"time"

	"github.com/check-scam/api-go/search"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Index search.Index
}

func NewHealthController(db *gorm.DB, index search.Index) *HealthController {
	return &HealthController{DB: db, Index: index}
}

func (hc *HealthController) Root(c *gin.Context) {
	esHealthy := hc.Index.Healthy(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"message":       "CheckScam API",
		"status":        "running",
		"elasticsearch": statusWord(esHealthy),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

func (hc *HealthController) Health(c *gin.Context) {
	dbHealthy := true
	if sqlDB, err := hc.DB.DB(); err != nil || sqlDB.PingContext(c.Request.Context()) != nil {
		dbHealthy = false
	}
	esHealthy := hc.Index.Healthy(c.Request.Context())

	status := "healthy"
	if !dbHealthy || !esHealthy {
		status = "degraded"
	}

	c.JSON(http.StatusOK, gin.H{
		"status":        status,
		"database":      statusWord(dbHealthy),
		"elasticsearch": statusWord(esHealthy),
		"timestamp":     time.Now().UTC().Format(time.RFC3339),
	})
}

func statusWord(ok bool) string {
	if ok {
		return "connected"
	}
	return "disconnected"
}
