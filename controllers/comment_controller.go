package controllers

import (
	"net/http"

	"github.com/check-scam/api-go/models"
	"github.com/check-scam/api-go/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

// CreateComment attaches a comment to an approved warning. Commenting on a
// pending, rejected or deleted warning is a not-found, same as fetching it.
func (cc *CommentController) CreateComment(c *gin.Context) {
	claims := utils.GetUser(c)

	var input struct {
		WarningID        uint   `json:"warning_id" binding:"required"`
		Content          string `json:"content" binding:"required"`
		IsVerifiedVictim bool   `json:"is_verified_victim"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var warning models.Warning
	if err := cc.DB.First(&warning, input.WarningID).Error; err != nil || warning.Status != models.StatusApproved {
		c.JSON(http.StatusNotFound, gin.H{"error": "Warning not found or not approved"})
		return
	}

	comment := models.Comment{
		WarningID:        input.WarningID,
		UserID:           claims.UserID,
		Content:          input.Content,
		IsVerifiedVictim: input.IsVerifiedVictim,
	}

	if err := cc.DB.Create(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	c.JSON(http.StatusCreated, StandardResponse{Success: true, Data: comment})
}

func (cc *CommentController) GetCommentsByWarning(c *gin.Context) {
	var query struct {
		Page     int `form:"page,default=1" binding:"min=1"`
		PageSize int `form:"page_size,default=50" binding:"min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var comments []models.Comment
	if err := cc.DB.Where("warning_id = ?", c.Param("id")).
		Order("created_at DESC").
		Offset((query.Page - 1) * query.PageSize).
		Limit(query.PageSize).
		Find(&comments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list comments"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: comments})
}

// canModify allows the comment's author and staff.
func canModify(claims *utils.UserClaims, comment *models.Comment) bool {
	return comment.UserID == claims.UserID || claims.Role.IsStaff()
}

func (cc *CommentController) UpdateComment(c *gin.Context) {
	claims := utils.GetUser(c)

	var comment models.Comment
	if err := cc.DB.First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !canModify(claims, &comment) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to update this comment"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment.Content = input.Content
	if err := cc.DB.Save(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update comment"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Data: comment})
}

func (cc *CommentController) DeleteComment(c *gin.Context) {
	claims := utils.GetUser(c)

	var comment models.Comment
	if err := cc.DB.First(&comment, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Comment not found"})
		return
	}

	if !canModify(claims, &comment) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to delete this comment"})
		return
	}

	if err := cc.DB.Delete(&comment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete comment"})
		return
	}

	c.JSON(http.StatusOK, StandardResponse{Success: true, Message: "Comment deleted successfully"})
}
