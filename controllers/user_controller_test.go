package controllers

import (
	"net/http"
	"os"
	"testing"

	"github.com/check-scam/api-go/middleware"
	"github.com/check-scam/api-go/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	t.Helper()
	uc := NewUserController(db, stubUploader{})
	r := gin.New()
	r.POST("/api/users/register", uc.Register)
	r.POST("/api/users/login", uc.Login)
	r.GET("/api/users/me", middleware.AuthMiddleware(), uc.GetMe)
	return r
}

func TestRegister(t *testing.T) {
	db := setupTestDB(t)
	r := newUserRouter(t, db)

	w := jsonRequest(t, r, http.MethodPost, "/api/users/register", gin.H{
		"username":  "alice",
		"email":     "alice@example.com",
		"phone":     "0912345678",
		"password":  "secret123",
		"full_name": "Alice Tran",
	})
	requireStatus(t, w, http.StatusCreated)

	var user models.User
	require.NoError(t, db.Where("username = ?", "alice").First(&user).Error)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret123", user.PasswordHash)
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupTestDB(t)
	r := newUserRouter(t, db)
	createUser(t, db, "alice", models.RoleUser)

	w := jsonRequest(t, r, http.MethodPost, "/api/users/register", gin.H{
		"username": "alice",
		"password": "secret123",
	})
	requireStatus(t, w, http.StatusBadRequest)

	// Duplicate email with a fresh username is rejected too.
	w = jsonRequest(t, r, http.MethodPost, "/api/users/register", gin.H{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret123",
	})
	requireStatus(t, w, http.StatusBadRequest)

	var count int64
	db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRegisterInvalidPhone(t *testing.T) {
	db := setupTestDB(t)
	r := newUserRouter(t, db)

	w := jsonRequest(t, r, http.MethodPost, "/api/users/register", gin.H{
		"username": "bob",
		"phone":    "12345",
		"password": "secret123",
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestLoginFlow(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)
	r := newUserRouter(t, db)
	createUser(t, db, "alice", models.RoleUser)

	w := jsonRequest(t, r, http.MethodPost, "/api/users/login", gin.H{
		"username": "alice",
		"password": "wrong",
	})
	requireStatus(t, w, http.StatusUnauthorized)

	w = jsonRequest(t, r, http.MethodPost, "/api/users/login", gin.H{
		"username": "alice",
		"password": "password123",
	})
	requireStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	// The issued token works against a protected endpoint.
	req := jsonRequestWithAuth(t, r, http.MethodGet, "/api/users/me", nil, token)
	requireStatus(t, req, http.StatusOK)

	// Login by email resolves the same account.
	w = jsonRequest(t, r, http.MethodPost, "/api/users/login", gin.H{
		"username": "alice@example.com",
		"password": "password123",
	})
	requireStatus(t, w, http.StatusOK)
}

func TestLoginDisabledAccount(t *testing.T) {
	db := setupTestDB(t)
	r := newUserRouter(t, db)
	user := createUser(t, db, "alice", models.RoleUser)
	require.NoError(t, db.Model(&user).Update("is_active", false).Error)

	w := jsonRequest(t, r, http.MethodPost, "/api/users/login", gin.H{
		"username": "alice",
		"password": "password123",
	})
	requireStatus(t, w, http.StatusBadRequest)
}

func TestDeleteUserProtectsAdmins(t *testing.T) {
	db := setupTestDB(t)
	admin := createUser(t, db, "root", models.RoleAdmin)
	victim := createUser(t, db, "mallory", models.RoleUser)

	uc := NewUserController(db, stubUploader{})
	r := gin.New()
	r.DELETE("/api/users/:id", authAs(admin.ID, admin.Role), uc.DeleteUser)

	w := jsonRequest(t, r, http.MethodDelete, "/api/users/1", nil)
	requireStatus(t, w, http.StatusForbidden)

	w = jsonRequest(t, r, http.MethodDelete, "/api/users/2", nil)
	requireStatus(t, w, http.StatusOK)

	var count int64
	db.Model(&models.User{}).Where("id = ?", victim.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
