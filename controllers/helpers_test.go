package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/check-scam/api-go/models"
	"github.com/check-scam/api-go/search"
	"github.com/check-scam/api-go/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.AdminProfile{}, &models.Warning{},
		&models.Report{}, &models.Comment{}, &models.SearchLog{},
	))
	return db
}

// unhealthyIndex forces every search through the store fallback so the
// controller tests never need Elasticsearch.
type unhealthyIndex struct{}

func (unhealthyIndex) Healthy(ctx context.Context) bool { return false }
func (unhealthyIndex) SearchWarningIDs(ctx context.Context, query, searchType string, page, pageSize int) ([]uint, int64, error) {
	return nil, 0, nil
}
func (unhealthyIndex) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	return nil, nil
}
func (unhealthyIndex) TopScammers(ctx context.Context, days, limit int) ([]search.ScammerStat, error) {
	return nil, nil
}
func (unhealthyIndex) TopSearches(ctx context.Context, days, limit int) ([]search.SearchStat, error) {
	return nil, nil
}

type noopWriter struct{}

func (noopWriter) IndexWarning(ctx context.Context, w *models.Warning) error { return nil }
func (noopWriter) DeleteWarning(ctx context.Context, id uint) error          { return nil }
func (noopWriter) LogSearch(ctx context.Context, doc search.SearchLogDoc) error {
	return nil
}

type stubUploader struct{}

func (stubUploader) Upload(ctx context.Context, file *multipart.FileHeader) (string, error) {
	return "https://cdn.example.com/" + file.Filename, nil
}

func (stubUploader) UploadMany(ctx context.Context, files []*multipart.FileHeader) []string {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		urls = append(urls, "https://cdn.example.com/"+f.Filename)
	}
	return urls
}

func newSearcher(t *testing.T, db *gorm.DB) *search.Searcher {
	t.Helper()
	return search.NewSearcher(unhealthyIndex{}, db)
}

func newPropagator(t *testing.T) *search.Propagator {
	t.Helper()
	p := search.NewPropagator(noopWriter{}, 16)
	t.Cleanup(p.Close)
	return p
}

// authAs injects claims the way AuthMiddleware does after verifying a token.
func authAs(userID uint, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(string(utils.UserContextKey), &utils.UserClaims{UserID: userID, Role: role})
		c.Next()
	}
}

func createUser(t *testing.T, db *gorm.DB, username string, role models.UserRole) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         role,
		FullName:     "Test " + username,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func jsonRequest(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func formRequest(t *testing.T, r *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func jsonRequestWithAuth(t *testing.T, r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	require.Equal(t, want, w.Code, w.Body.String())
}
