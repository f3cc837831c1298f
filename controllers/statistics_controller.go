package controllers

import (
	"net/http"
	"time"

	"github.com/check-scam/api-go/models"
	"github.com/check-scam/api-go/search"
	"github.com/check-scam/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StatisticsController struct {
	DB       *gorm.DB
	Searcher *search.Searcher
}

func NewStatisticsController(db *gorm.DB, searcher *search.Searcher) *StatisticsController {
	return &StatisticsController{DB: db, Searcher: searcher}
}

type recentWarning struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	ScammerName  string    `json:"scammer_name"`
	BankAccount  string    `json:"bank_account"`
	ViewCount    int       `json:"view_count"`
	SearchCount  int       `json:"search_count"`
	WarningCount int       `json:"warning_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// GetDashboard rolls up totals, top lists and recent warnings over the
// trailing window. Top lists prefer the index with a store fallback;
// recent warnings always come from the store.
func (sc *StatisticsController) GetDashboard(c *gin.Context) {
	var query struct {
		Days int `form:"days,default=7" binding:"min=1"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	since := time.Now().AddDate(0, 0, -query.Days)

	var totalWarnings int64
	sc.DB.Model(&models.Warning{}).Where("created_at >= ?", since).Count(&totalWarnings)

	var totalViews int64
	sc.DB.Model(&models.Warning{}).Where("created_at >= ?", since).
		Select("COALESCE(SUM(view_count), 0)").Scan(&totalViews)

	var totalReports int64
	sc.DB.Model(&models.Report{}).Where("created_at >= ?", since).Count(&totalReports)

	topScammers, err := sc.Searcher.TopScammers(ctx, query.Days, 10)
	if err != nil {
		topScammers = []search.ScammerStat{}
	}
	for i := range topScammers {
		if topScammers[i].BankAccount != "" {
			topScammers[i].BankAccount = utils.MaskBankAccount(topScammers[i].BankAccount)
		}
	}

	// Search interest turns over fast, so the search list is scoped to
	// at most a day.
	searchDays := query.Days
	if searchDays > 1 {
		searchDays = 1
	}
	topSearches, err := sc.Searcher.TopSearches(ctx, searchDays, 10)
	if err != nil {
		topSearches = []search.SearchStat{}
	}

	var recent []models.Warning
	sc.DB.Where("status = ?", models.StatusApproved).
		Where("created_at >= ?", since).
		Order("created_at DESC").
		Limit(20).
		Find(&recent)

	recentOut := make([]recentWarning, 0, len(recent))
	for _, w := range recent {
		masked := ""
		if w.BankAccount != "" {
			masked = utils.MaskBankAccount(w.BankAccount)
		}
		recentOut = append(recentOut, recentWarning{
			ID:           w.ID,
			Title:        w.Title,
			ScammerName:  w.ScammerName,
			BankAccount:  masked,
			ViewCount:    w.ViewCount,
			SearchCount:  w.SearchCount,
			WarningCount: w.WarningCount,
			CreatedAt:    w.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"total_warnings":  totalWarnings,
		"total_views":     totalViews,
		"total_reports":   totalReports,
		"top_scammers":    topScammers,
		"top_searches":    topSearches,
		"recent_warnings": recentOut,
	})
}
