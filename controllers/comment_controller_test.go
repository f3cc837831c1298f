package controllers

import (
	"net/http"
	"testing"

	"github.com/check-scam/api-go/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCommentRouter(t *testing.T, db *gorm.DB, userID uint, role models.UserRole) *gin.Engine {
	t.Helper()
	cc := NewCommentController(db)
	r := gin.New()
	r.GET("/api/comments/warning/:id", cc.GetCommentsByWarning)

	auth := authAs(userID, role)
	r.POST("/api/comments", auth, cc.CreateComment)
	r.PUT("/api/comments/:id", auth, cc.UpdateComment)
	r.DELETE("/api/comments/:id", auth, cc.DeleteComment)
	return r
}

func TestCreateCommentOnApprovedWarning(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "victim", models.RoleUser)
	r := newCommentRouter(t, db, user.ID, user.Role)
	warning := seedApprovedWarning(t, db, "Nguyen Van A", "1234567890")

	w := jsonRequest(t, r, http.MethodPost, "/api/comments", gin.H{
		"warning_id":         warning.ID,
		"content":            "Same thing happened to me",
		"is_verified_victim": true,
	})
	requireStatus(t, w, http.StatusCreated)

	list := jsonRequest(t, r, http.MethodGet, "/api/comments/warning/1", nil)
	requireStatus(t, list, http.StatusOK)
	body := decodeBody(t, list)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Same thing happened to me", data[0].(map[string]interface{})["content"])
}

func TestCreateCommentOnUnapprovedWarning(t *testing.T) {
	db := setupTestDB(t)
	user := createUser(t, db, "victim", models.RoleUser)
	r := newCommentRouter(t, db, user.ID, user.Role)

	pending := models.Warning{Title: "t", ScammerName: "s", Content: "c", Status: models.StatusPending}
	require.NoError(t, db.Create(&pending).Error)

	w := jsonRequest(t, r, http.MethodPost, "/api/comments", gin.H{
		"warning_id": pending.ID,
		"content":    "too early",
	})
	requireStatus(t, w, http.StatusNotFound)

	w = jsonRequest(t, r, http.MethodPost, "/api/comments", gin.H{
		"warning_id": 9999,
		"content":    "no such warning",
	})
	requireStatus(t, w, http.StatusNotFound)
}

func TestUpdateCommentOwnership(t *testing.T) {
	db := setupTestDB(t)
	author := createUser(t, db, "author", models.RoleUser)
	stranger := createUser(t, db, "stranger", models.RoleUser)
	moderator := createUser(t, db, "mod", models.RoleModerator)
	warning := seedApprovedWarning(t, db, "Nguyen Van A", "1234567890")

	comment := models.Comment{WarningID: warning.ID, UserID: author.ID, Content: "original"}
	require.NoError(t, db.Create(&comment).Error)

	// A stranger may not touch it.
	r := newCommentRouter(t, db, stranger.ID, stranger.Role)
	w := jsonRequest(t, r, http.MethodPut, "/api/comments/1", gin.H{"content": "defaced"})
	requireStatus(t, w, http.StatusForbidden)

	// The author may.
	r = newCommentRouter(t, db, author.ID, author.Role)
	w = jsonRequest(t, r, http.MethodPut, "/api/comments/1", gin.H{"content": "edited"})
	requireStatus(t, w, http.StatusOK)

	// Staff may delete anyone's comment.
	r = newCommentRouter(t, db, moderator.ID, moderator.Role)
	w = jsonRequest(t, r, http.MethodDelete, "/api/comments/1", nil)
	requireStatus(t, w, http.StatusOK)

	var count int64
	db.Model(&models.Comment{}).Count(&count)
	assert.Equal(t, int64(0), count)
}
