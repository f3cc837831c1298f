package controllers

import (
	"net/http"

	"github.com/check-scam/api-go/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminController struct {
	DB *gorm.DB
}

func NewAdminController(db *gorm.DB) *AdminController {
	return &AdminController{DB: db}
}

// ListPublicAdmins returns the publicly visible admin contact cards,
// ordered by admin number.
func (ac *AdminController) ListPublicAdmins(c *gin.Context) {
	var query struct {
		Page     int `form:"page,default=1" binding:"min=1"`
		PageSize int `form:"page_size,default=20" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admins []models.AdminProfile
	if err := ac.DB.Where("is_public = ?", true).
		Order("admin_number").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&admins).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list admins"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: admins})
}

func (ac *AdminController) GetAdminByNumber(c *gin.Context) {
	var admin models.AdminProfile
	if err := ac.DB.Where("admin_number = ? AND is_public = ?", c.Param("number"), true).
		First(&admin).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: admin})
}

type CreateAdminProfileRequest struct {
	UserID         uint           `json:"user_id" binding:"required"`
	AdminNumber    int            `json:"admin_number" binding:"required,min=1"`
	FacebookMain   string         `json:"facebook_main"`
	FacebookBackup string         `json:"facebook_backup"`
	Zalo           string         `json:"zalo"`
	Website        string         `json:"website"`
	Services       models.JSONMap `json:"services"`
	BankAccounts   models.JSONMap `json:"bank_accounts"`
	InsuranceFund  float64        `json:"insurance_fund"`
	IsPublic       *bool          `json:"is_public"`
}

func (ac *AdminController) CreateProfile(c *gin.Context) {
	var req CreateAdminProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, req.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var existing models.AdminProfile
	if err := ac.DB.Where("user_id = ? OR admin_number = ?", req.UserID, req.AdminNumber).
		First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Admin profile already exists or admin number is taken"})
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	profile := models.AdminProfile{
		UserID:         req.UserID,
		AdminNumber:    req.AdminNumber,
		FacebookMain:   req.FacebookMain,
		FacebookBackup: req.FacebookBackup,
		Zalo:           req.Zalo,
		Website:        req.Website,
		Services:       req.Services,
		BankAccounts:   req.BankAccounts,
		InsuranceFund:  req.InsuranceFund,
		IsPublic:       isPublic,
	}

	if err := ac.DB.Create(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create admin profile"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: profile})
}

func (ac *AdminController) ListAllProfiles(c *gin.Context) {
	var query struct {
		Page     int `form:"page,default=1" binding:"min=1"`
		PageSize int `form:"page_size,default=50" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profiles []models.AdminProfile
	if err := ac.DB.Order("admin_number").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&profiles).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list admin profiles"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: profiles})
}

func (ac *AdminController) UpdateProfile(c *gin.Context) {
	var profile models.AdminProfile
	if err := ac.DB.First(&profile, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	var input struct {
		AdminNumber    *int            `json:"admin_number"`
		FacebookMain   *string         `json:"facebook_main"`
		FacebookBackup *string         `json:"facebook_backup"`
		Zalo           *string         `json:"zalo"`
		Website        *string         `json:"website"`
		Services       *models.JSONMap `json:"services"`
		BankAccounts   *models.JSONMap `json:"bank_accounts"`
		InsuranceFund  *float64        `json:"insurance_fund"`
		IsPublic       *bool           `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.AdminNumber != nil {
		profile.AdminNumber = *input.AdminNumber
	}
	if input.FacebookMain != nil {
		profile.FacebookMain = *input.FacebookMain
	}
	if input.FacebookBackup != nil {
		profile.FacebookBackup = *input.FacebookBackup
	}
	if input.Zalo != nil {
		profile.Zalo = *input.Zalo
	}
	if input.Website != nil {
		profile.Website = *input.Website
	}
	if input.Services != nil {
		profile.Services = *input.Services
	}
	if input.BankAccounts != nil {
		profile.BankAccounts = *input.BankAccounts
	}
	if input.InsuranceFund != nil {
		profile.InsuranceFund = *input.InsuranceFund
	}
	if input.IsPublic != nil {
		profile.IsPublic = *input.IsPublic
	}

	if err := ac.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: profile})
}

func (ac *AdminController) DeleteProfile(c *gin.Context) {
	var profile models.AdminProfile
	if err := ac.DB.First(&profile, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Profile not found"})
		return
	}

	if err := ac.DB.Delete(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete profile"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Admin profile deleted successfully"})
}
