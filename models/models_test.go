package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&User{}, &AdminProfile{}, &Warning{}, &Report{}, &Comment{}, &SearchLog{}))
	return db
}

func TestWarningBeforeSaveDefaults(t *testing.T) {
	db := setupTestDB(t)

	w := Warning{Title: "Fake shop", ScammerName: "Nguyen Van A", Content: "Took payment and vanished"}
	require.NoError(t, db.Create(&w).Error)

	assert.Equal(t, StatusPending, w.Status)
	assert.Equal(t, CategoryOther, w.Category)
	assert.Equal(t, 1, w.WarningCount)
}

func TestWarningBeforeSaveRejectsInvalidEnums(t *testing.T) {
	db := setupTestDB(t)

	w := Warning{Title: "t", ScammerName: "s", Content: "c", Status: "archived"}
	err := db.Create(&w).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status")

	w = Warning{Title: "t", ScammerName: "s", Content: "c", Category: "crypto"}
	err = db.Create(&w).Error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "category")
}

func TestUserBeforeSaveRole(t *testing.T) {
	db := setupTestDB(t)

	u := User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	assert.Equal(t, RoleUser, u.Role)

	bad := User{Username: "bob", PasswordHash: "x", Role: "root"}
	assert.Error(t, db.Create(&bad).Error)
}

func TestReportBeforeSaveRejectsInvalidType(t *testing.T) {
	db := setupTestDB(t)

	r := Report{ReportType: "email", Content: "sent money, no goods"}
	assert.Error(t, db.Create(&r).Error)

	r = Report{ReportType: ReportTypeScam, Content: "sent money, no goods"}
	assert.NoError(t, db.Create(&r).Error)
	assert.Equal(t, StatusPending, r.Status)
}

func TestStringListRoundTrip(t *testing.T) {
	db := setupTestDB(t)

	w := Warning{
		Title:          "t",
		ScammerName:    "s",
		Content:        "c",
		EvidenceImages: StringList{"https://cdn.example.com/1.jpg", "https://cdn.example.com/2.jpg"},
	}
	require.NoError(t, db.Create(&w).Error)

	var loaded Warning
	require.NoError(t, db.First(&loaded, w.ID).Error)
	assert.Equal(t, w.EvidenceImages, loaded.EvidenceImages)

	// An empty list survives the round trip as empty, not nil JSON noise.
	empty := Warning{Title: "t2", ScammerName: "s2", Content: "c2"}
	require.NoError(t, db.Create(&empty).Error)
	var loadedEmpty Warning
	require.NoError(t, db.First(&loadedEmpty, empty.ID).Error)
	assert.Empty(t, loadedEmpty.EvidenceImages)
}

func TestRoleIsStaff(t *testing.T) {
	assert.True(t, RoleAdmin.IsStaff())
	assert.True(t, RoleModerator.IsStaff())
	assert.False(t, RoleUser.IsStaff())
}
