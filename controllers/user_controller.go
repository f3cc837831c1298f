package controllers

import (
	"net/http"
	"os"
	"time"

	"github.com/check-scam/api-go/models"
	"github.com/check-scam/api-go/storage"
	"github.com/check-scam/api-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserController struct {
	DB       *gorm.DB
	Uploader storage.ImageUploader
}

func NewUserController(db *gorm.DB, uploader storage.ImageUploader) *UserController {
	return &UserController{DB: db, Uploader: uploader}
}

func (uc *UserController) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,min=3,max=100"`
		Email    string `json:"email" binding:"omitempty,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required,min=6"`
		FullName string `json:"full_name"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	if input.Phone != "" && !utils.ValidatePhoneNumber(input.Phone) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid phone number", "success": false})
		return
	}

	var existing models.User
	dup := uc.DB.Where("username = ?", input.Username)
	if input.Email != "" {
		dup = dup.Or("email = ?", input.Email)
	}
	if input.Phone != "" {
		dup = dup.Or("phone = ?", input.Phone)
	}
	if err := uc.DB.Where(dup).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email or phone already exists", "success": false})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password", "success": false})
		return
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		Phone:        input.Phone,
		PasswordHash: string(hashedPassword),
		FullName:     input.FullName,
		Role:         models.RoleUser,
	}

	if err := uc.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email or phone already exists", "success": false})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{
		Success: true,
		Data:    user,
		Message: "User registered successfully",
	})
}

func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "success": false})
		return
	}

	// The login identifier may be a username, an email or a phone number.
	var user models.User
	if err := uc.DB.Where("username = ? OR email = ? OR phone = ?",
		input.Username, input.Username, input.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "success": false})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials", "success": false})
		return
	}

	if !user.IsActive {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Account is disabled", "success": false})
		return
	}

	now := time.Now()
	user.LastLogin = &now
	uc.DB.Model(&user).UpdateColumn("last_login", now)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     now.Add(24 * time.Hour).Unix(),
	})

	accessToken, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not generate token", "success": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"token_type":   "Bearer",
		"access_token": accessToken,
		"user":         user,
	})
}

func (uc *UserController) GetMe(c *gin.Context) {
	claims := utils.GetUser(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: user})
}

func (uc *UserController) UpdateMe(c *gin.Context) {
	claims := utils.GetUser(c)

	var input struct {
		FullName    string `json:"full_name"`
		Phone       string `json:"phone"`
		Email       string `json:"email" binding:"omitempty,email"`
		ZaloContact string `json:"zalo_contact"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := uc.DB.First(&user, claims.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	updates := map[string]interface{}{}
	if input.FullName != "" {
		updates["full_name"] = input.FullName
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.ZaloContact != "" {
		updates["zalo_contact"] = input.ZaloContact
	}

	if len(updates) > 0 {
		if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: user, Message: "Profile updated successfully"})
}

func (uc *UserController) UploadAvatar(c *gin.Context) {
	claims := utils.GetUser(c)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}

	url, err := uc.Uploader.Upload(c.Request.Context(), file)
	if err != nil {
		if err == storage.ErrNotAnImage {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Only image files are accepted"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	if err := uc.DB.Model(&models.User{}).Where("id = ?", claims.UserID).
		Update("avatar_url", url).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save avatar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "avatar_url": url})
}

// ===== Admin user management =====

func (uc *UserController) ListUsers(c *gin.Context) {
	var query struct {
		Role     string `form:"role" binding:"omitempty,oneof=user admin moderator"`
		IsActive *bool  `form:"is_active"`
		Page     int    `form:"page,default=1" binding:"min=1"`
		PageSize int    `form:"page_size,default=50" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	q := uc.DB.Model(&models.User{})
	if query.Role != "" {
		q = q.Where("role = ?", query.Role)
	}
	if query.IsActive != nil {
		q = q.Where("is_active = ?", *query.IsActive)
	}

	var total int64
	q.Count(&total)

	var users []models.User
	if err := q.Order("created_at DESC").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{
		Success:    true,
		Data:       users,
		Pagination: paginationMeta(query.Page, query.PageSize, total),
	})
}

func (uc *UserController) GetUser(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: user})
}

func (uc *UserController) UpdateUser(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var input struct {
		Role       *models.UserRole `json:"role" binding:"omitempty,oneof=user admin moderator"`
		IsActive   *bool            `json:"is_active"`
		IsVerified *bool            `json:"is_verified"`
		FullName   *string          `json:"full_name"`
		Phone      *string          `json:"phone"`
		Email      *string          `json:"email" binding:"omitempty,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.IsVerified != nil {
		user.IsVerified = *input.IsVerified
	}
	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Phone != nil {
		user.Phone = *input.Phone
	}
	if input.Email != nil {
		user.Email = *input.Email
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: user})
}

func (uc *UserController) DeleteUser(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if user.Role == models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot delete admin user"})
		return
	}

	if err := uc.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "User deleted successfully"})
}
