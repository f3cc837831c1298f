package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/check-scam/api-go/models"
	"github.com/check-scam/api-go/search"
	"github.com/check-scam/api-go/storage"
	"github.com/check-scam/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type WarningController struct {
	DB         *gorm.DB
	Searcher   *search.Searcher
	Propagator *search.Propagator
	Uploader   storage.ImageUploader
}

func NewWarningController(db *gorm.DB, searcher *search.Searcher, propagator *search.Propagator, uploader storage.ImageUploader) *WarningController {
	return &WarningController{DB: db, Searcher: searcher, Propagator: propagator, Uploader: uploader}
}

type SearchWarningsQuery struct {
	Query      string `form:"query" binding:"required,min=1"`
	SearchType string `form:"search_type" binding:"omitempty,oneof=phone bank_account facebook name"`
	Page       int    `form:"page,default=1" binding:"min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"min=1,max=100"`
}

// SearchWarnings is the ranked search entry point. The query is logged
// fire-and-forget, the index is tried first with the store as fallback, and
// search counters are bumped best-effort after the results are in hand.
func (wc *WarningController) SearchWarnings(c *gin.Context) {
	var query SearchWarningsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	warnings, total, err := wc.Searcher.SearchWarnings(c.Request.Context(), query.Query, query.SearchType, query.Page, query.PageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Search failed"})
		return
	}

	wc.logSearch(c, query, total)
	wc.bumpSearchCounts(warnings)

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       warnings,
		Pagination: paginationMeta(query.Page, query.PageSize, total),
	})
}

// logSearch records the query and its hit count in the store and queues the
// index event. Neither may block or fail the search.
func (wc *WarningController) logSearch(c *gin.Context, query SearchWarningsQuery, resultCount int64) {
	logRow := models.SearchLog{
		SearchQuery: query.Query,
		SearchType:  query.SearchType,
		IPAddress:   c.ClientIP(),
		ResultCount: int(resultCount),
	}
	doc := search.SearchLogDoc{
		SearchQuery: query.Query,
		SearchType:  query.SearchType,
		IPAddress:   c.ClientIP(),
		ResultCount: int(resultCount),
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if claims := utils.GetUser(c); claims != nil {
		logRow.UserID = &claims.UserID
		doc.UserID = strconv.FormatUint(uint64(claims.UserID), 10)
	}

	if err := wc.DB.Create(&logRow).Error; err != nil {
		log.Printf("search log write failed: %v", err)
	}
	wc.Propagator.LogSearch(doc)
}

// bumpSearchCounts increments search_count on the returned warnings in one
// statement. A failed increment is logged and ignored; the results were
// already correct without it.
func (wc *WarningController) bumpSearchCounts(warnings []models.Warning) {
	if len(warnings) == 0 {
		return
	}
	ids := make([]uint, len(warnings))
	for i, w := range warnings {
		ids[i] = w.ID
	}
	err := wc.DB.Model(&models.Warning{}).
		Where("id IN ?", ids).
		UpdateColumn("search_count", gorm.Expr("search_count + 1")).Error
	if err != nil {
		log.Printf("search count update failed: %v", err)
		return
	}
	for i := range warnings {
		warnings[i].SearchCount++
		wc.Propagator.IndexWarning(warnings[i])
	}
}

// SuggestSearch returns autocomplete suggestions for the search box. The
// completion suggester answers when the index is up; the store falls back to
// distinct approved scammer names.
func (wc *WarningController) SuggestSearch(c *gin.Context) {
	var query struct {
		Query string `form:"query" binding:"required,min=1"`
		Limit int    `form:"limit,default=10" binding:"min=1,max=50"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	suggestions, err := wc.Searcher.Suggest(c.Request.Context(), query.Query, query.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Suggest failed"})
		return
	}
	if suggestions == nil {
		suggestions = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "suggestions": suggestions})
}

func (wc *WarningController) ListWarnings(c *gin.Context) {
	var query struct {
		Category string `form:"category" binding:"omitempty,oneof=facebook zalo banking gaming ecommerce investment other"`
		Page     int    `form:"page,default=1" binding:"min=1"`
		PageSize int    `form:"page_size,default=20" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := wc.DB.Model(&models.Warning{}).Where("status = ?", models.StatusApproved)
	if query.Category != "" {
		q = q.Where("category = ?", query.Category)
	}

	var total int64
	q.Count(&total)

	var warnings []models.Warning
	if err := q.Order("created_at DESC").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&warnings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list warnings"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       warnings,
		Pagination: paginationMeta(query.Page, query.PageSize, total),
	})
}

// GetWarning returns an approved warning and bumps its view counter.
// Pending, rejected and deleted warnings are not publicly visible.
func (wc *WarningController) GetWarning(c *gin.Context) {
	var warning models.Warning
	if err := wc.DB.Where("status = ?", models.StatusApproved).
		First(&warning, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Warning not found"})
		return
	}

	if err := wc.DB.Model(&warning).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		log.Printf("view count update failed: %v", err)
	} else {
		warning.ViewCount++
		wc.Propagator.IndexWarning(warning)
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success: true,
		Data:    warning,
		Meta:    gin.H{"credibility_score": utils.CredibilityScore(&warning)},
	})
}

type CreateWarningRequest struct {
	Title            string `form:"title" binding:"required,max=500"`
	ScammerName      string `form:"scammer_name" binding:"required,max=255"`
	BankAccount      string `form:"bank_account"`
	BankName         string `form:"bank_name"`
	FacebookLink     string `form:"facebook_link"`
	Content          string `form:"content" binding:"required"`
	Category         string `form:"category" binding:"omitempty,oneof=facebook zalo banking gaming ecommerce investment other"`
	ReporterName     string `form:"reporter_name"`
	ReporterZalo     string `form:"reporter_zalo"`
	IsAnonymous      bool   `form:"is_anonymous"`
	ReporterNickname string `form:"reporter_nickname"`
}

func (wc *WarningController) CreateWarning(c *gin.Context) {
	claims := utils.GetUser(c)

	var req CreateWarningRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BankAccount != "" && !utils.ValidateBankAccount(req.BankAccount) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bank account number"})
		return
	}

	var user models.User
	if err := wc.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	var evidenceURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["evidence_images"]; len(files) > 0 {
			evidenceURLs = wc.Uploader.UploadMany(c.Request.Context(), files)
		}
	}

	reporterName := req.ReporterName
	if reporterName == "" {
		reporterName = user.FullName
	}
	reporterZalo := req.ReporterZalo
	if reporterZalo == "" {
		reporterZalo = user.ZaloContact
	}

	warning := models.Warning{
		Title:            req.Title,
		ScammerName:      req.ScammerName,
		BankAccount:      req.BankAccount,
		BankName:         req.BankName,
		FacebookLink:     req.FacebookLink,
		Content:          req.Content,
		Category:         models.WarningCategory(req.Category),
		EvidenceImages:   evidenceURLs,
		Status:           models.StatusPending,
		WarningCount:     1,
		ReporterID:       &claims.UserID,
		ReporterName:     reporterName,
		ReporterZalo:     reporterZalo,
		IsAnonymous:      req.IsAnonymous,
		ReporterNickname: req.ReporterNickname,
	}

	if err := wc.DB.Create(&warning).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create warning"})
		return
	}

	wc.Propagator.IndexWarning(warning)

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    warning,
		Message: "Warning submitted for review",
	})
}

type ReviewWarningRequest struct {
	Status models.WarningStatus `json:"status" binding:"omitempty,oneof=approved rejected deleted"`
	Note   string               `json:"note"`
}

// ReviewWarning moves a warning through the moderation workflow. Approval
// stamps approved_at and recomputes the duplicate counter; every status
// change stamps the reviewer.
func (wc *WarningController) ReviewWarning(c *gin.Context) {
	claims := utils.GetUser(c)

	var warning models.Warning
	if err := wc.DB.First(&warning, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Warning not found"})
		return
	}

	var req ReviewWarningRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Status != "" {
		// Approve and reject only apply to pending warnings; delete
		// applies to anything.
		if req.Status != models.StatusDeleted && warning.Status != models.StatusPending {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Warning has already been reviewed"})
			return
		}

		now := time.Now()
		warning.Status = req.Status
		warning.ReviewerID = &claims.UserID
		warning.ReviewedAt = &now

		if req.Status == models.StatusApproved {
			warning.ApprovedAt = &now

			var siblings int64
			wc.DB.Model(&models.Warning{}).
				Where("scammer_name = ? AND bank_account = ?", warning.ScammerName, warning.BankAccount).
				Where("status = ?", models.StatusApproved).
				Where("id <> ?", warning.ID).
				Count(&siblings)
			warning.WarningCount = int(siblings) + 1
		}
	}

	if req.Note != "" {
		warning.ReviewNote = req.Note
	}

	if err := wc.DB.Save(&warning).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update warning"})
		return
	}

	if warning.Status == models.StatusDeleted {
		wc.Propagator.DeleteWarning(warning.ID)
	} else {
		wc.Propagator.IndexWarning(warning)
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: warning})
}

// DeleteWarning soft-deletes: the row stays, the status flips to deleted
// and the index document is removed.
func (wc *WarningController) DeleteWarning(c *gin.Context) {
	var warning models.Warning
	if err := wc.DB.First(&warning, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Warning not found"})
		return
	}

	warning.Status = models.StatusDeleted
	if err := wc.DB.Save(&warning).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete warning"})
		return
	}

	wc.Propagator.DeleteWarning(warning.ID)

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Warning deleted successfully"})
}

func (wc *WarningController) TopScammers(c *gin.Context) {
	var query struct {
		Days  int `form:"days,default=7" binding:"min=1"`
		Limit int `form:"limit,default=10" binding:"min=1,max=50"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := wc.Searcher.TopScammers(c.Request.Context(), query.Days, query.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate top scammers"})
		return
	}
	for i := range stats {
		if stats[i].BankAccount != "" {
			stats[i].BankAccount = utils.MaskBankAccount(stats[i].BankAccount)
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: stats})
}

func (wc *WarningController) TopSearches(c *gin.Context) {
	var query struct {
		Days  int `form:"days,default=1" binding:"min=1"`
		Limit int `form:"limit,default=10" binding:"min=1,max=50"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	stats, err := wc.Searcher.TopSearches(c.Request.Context(), query.Days, query.Limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to aggregate top searches"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: stats})
}
