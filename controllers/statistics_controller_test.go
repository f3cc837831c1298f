package controllers

import (
	"net/http"
	"testing"

	"github.com/check-scam/api-go/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboard(t *testing.T) {
	db := setupTestDB(t)
	sc := NewStatisticsController(db, newSearcher(t, db))
	r := gin.New()
	r.GET("/api/statistics/dashboard", authAs(1, models.RoleAdmin), sc.GetDashboard)

	approved := models.Warning{
		Title: "t1", ScammerName: "Nguyen Van A", BankAccount: "1234567890",
		Content: "c", Status: models.StatusApproved, ViewCount: 5,
	}
	require.NoError(t, db.Create(&approved).Error)
	pending := models.Warning{
		Title: "t2", ScammerName: "Nguyen Van B", Content: "c",
		Status: models.StatusPending, ViewCount: 2,
	}
	require.NoError(t, db.Create(&pending).Error)
	require.NoError(t, db.Create(&models.Report{ReportType: models.ReportTypeScam, ScammerName: "X", Content: "c"}).Error)
	require.NoError(t, db.Create(&models.SearchLog{SearchQuery: "0912345678"}).Error)

	w := jsonRequest(t, r, http.MethodGet, "/api/statistics/dashboard?days=7", nil)
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)

	// Totals count every warning in the window, approved or not.
	assert.Equal(t, float64(2), body["total_warnings"])
	assert.Equal(t, float64(7), body["total_views"])
	assert.Equal(t, float64(1), body["total_reports"])

	// Recent warnings list only approved rows, with masked bank accounts.
	recent := body["recent_warnings"].([]interface{})
	require.Len(t, recent, 1)
	entry := recent[0].(map[string]interface{})
	assert.Equal(t, "Nguyen Van A", entry["scammer_name"])
	assert.Equal(t, "123****890", entry["bank_account"])

	searches := body["top_searches"].([]interface{})
	require.Len(t, searches, 1)
	assert.Equal(t, "0912345678", searches[0].(map[string]interface{})["query"])
}

func TestGetDashboardRejectsBadWindow(t *testing.T) {
	db := setupTestDB(t)
	sc := NewStatisticsController(db, newSearcher(t, db))
	r := gin.New()
	r.GET("/api/statistics/dashboard", authAs(1, models.RoleAdmin), sc.GetDashboard)

	w := jsonRequest(t, r, http.MethodGet, "/api/statistics/dashboard?days=0", nil)
	requireStatus(t, w, http.StatusBadRequest)
}
