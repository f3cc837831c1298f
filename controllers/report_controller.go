package controllers

import (
	"net/http"
	"time"

	"github.com/check-scam/api-go/models"
	"github.com/check-scam/api-go/storage"
	"github.com/check-scam/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ReportController struct {
	DB       *gorm.DB
	Uploader storage.ImageUploader
}

func NewReportController(db *gorm.DB, uploader storage.ImageUploader) *ReportController {
	return &ReportController{DB: db, Uploader: uploader}
}

type CreateReportRequest struct {
	ScammerName     string `form:"scammer_name"`
	BankAccount     string `form:"bank_account"`
	BankName        string `form:"bank_name"`
	FacebookLink    string `form:"facebook_link"`
	WebsiteURL      string `form:"website_url"`
	WebsiteCategory string `form:"website_category"`
	Content         string `form:"content" binding:"required"`
	Category        string `form:"category" binding:"omitempty,oneof=facebook zalo banking gaming ecommerce investment other"`
	ReporterName    string `form:"reporter_name"`
	ReporterZalo    string `form:"reporter_zalo"`
	ReporterEmail   string `form:"reporter_email" binding:"omitempty,email"`
	AgreeTerms      bool   `form:"agree_terms"`
}

// CreateScamReport is the public intake for scam reports. A name or a bank
// account is required, and the terms must be accepted.
func (rc *ReportController) CreateScamReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ScammerName == "" && req.BankAccount == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Scammer name or bank account is required"})
		return
	}

	rc.createReport(c, req, models.ReportTypeScam)
}

// CreateWebsiteReport is the public intake for fraudulent-website reports.
func (rc *ReportController) CreateWebsiteReport(c *gin.Context) {
	var req CreateReportRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.WebsiteURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Website URL is required"})
		return
	}

	rc.createReport(c, req, models.ReportTypeWebsite)
}

func (rc *ReportController) createReport(c *gin.Context, req CreateReportRequest, reportType models.ReportType) {
	if !req.AgreeTerms {
		c.JSON(http.StatusBadRequest, gin.H{"error": "You must agree to the terms"})
		return
	}

	var evidenceURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["evidence_images"]; len(files) > 0 {
			evidenceURLs = rc.Uploader.UploadMany(c.Request.Context(), files)
		}
	}

	report := models.Report{
		ReportType:      reportType,
		ScammerName:     req.ScammerName,
		BankAccount:     req.BankAccount,
		BankName:        req.BankName,
		FacebookLink:    req.FacebookLink,
		WebsiteURL:      req.WebsiteURL,
		WebsiteCategory: req.WebsiteCategory,
		Content:         req.Content,
		EvidenceImages:  evidenceURLs,
		Category:        models.WarningCategory(req.Category),
		Status:          models.StatusPending,
		ReporterName:    req.ReporterName,
		ReporterZalo:    req.ReporterZalo,
		ReporterEmail:   req.ReporterEmail,
		AgreeTerms:      req.AgreeTerms,
	}
	if claims := utils.GetUser(c); claims != nil {
		report.ReporterID = &claims.UserID
	}

	if err := rc.DB.Create(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create report"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    report,
		Message: "Report submitted for review",
	})
}

// ===== Admin endpoints =====

func (rc *ReportController) ListReports(c *gin.Context) {
	var query struct {
		ReportType string `form:"report_type" binding:"omitempty,oneof=scam website"`
		Status     string `form:"status" binding:"omitempty,oneof=pending approved rejected deleted"`
		Page       int    `form:"page,default=1" binding:"min=1"`
		PageSize   int    `form:"page_size,default=50" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := rc.DB.Model(&models.Report{})
	if query.ReportType != "" {
		q = q.Where("report_type = ?", query.ReportType)
	}
	if query.Status != "" {
		q = q.Where("status = ?", query.Status)
	}

	var total int64
	q.Count(&total)

	var reports []models.Report
	if err := q.Order("created_at DESC").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&reports).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reports"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       reports,
		Pagination: paginationMeta(query.Page, query.PageSize, total),
	})
}

func (rc *ReportController) UpdateReport(c *gin.Context) {
	claims := utils.GetUser(c)

	var report models.Report
	if err := rc.DB.First(&report, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	var input struct {
		Status models.WarningStatus `json:"status" binding:"omitempty,oneof=pending approved rejected deleted"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Status != "" {
		now := time.Now()
		report.Status = input.Status
		report.ReviewerID = &claims.UserID
		report.ReviewedAt = &now
	}

	if err := rc.DB.Save(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update report"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: report})
}

func (rc *ReportController) DeleteReport(c *gin.Context) {
	var report models.Report
	if err := rc.DB.First(&report, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	if err := rc.DB.Delete(&report).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete report"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Report deleted successfully"})
}
