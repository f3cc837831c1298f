package search

import (
	"strings"
	"testing"
	"time"

	"github.com/check-scam/api-go/models"
	"github.com/stretchr/testify/assert"
)

func TestWarningToDoc(t *testing.T) {
	created := time.Date(2025, 3, 15, 10, 30, 0, 0, time.UTC)
	approved := created.Add(2 * time.Hour)
	w := models.Warning{
		ID:           42,
		Title:        "Fake electronics shop",
		ScammerName:  "Nguyen Van A",
		BankAccount:  "1234567890",
		FacebookLink: "https://facebook.com/scam.page",
		Content:      "Paid for a phone, got nothing",
		Category:     models.CategoryEcommerce,
		Status:       models.StatusApproved,
		WarningCount: 2,
		CreatedAt:    created,
		ApprovedAt:   &approved,
	}

	doc := WarningToDoc(&w)
	assert.Equal(t, "42", doc.ID)
	assert.Equal(t, "approved", doc.Status)
	assert.Equal(t, "ecommerce", doc.Category)
	assert.Equal(t, "2025-03-15T10:30:00Z", doc.CreatedAt)
	assert.Equal(t, "2025-03-15T12:30:00Z", doc.ApprovedAt)

	// Every searchable field lands in the combined blob.
	for _, part := range []string{w.ScammerName, w.BankAccount, w.FacebookLink, w.Title, w.Content} {
		assert.True(t, strings.Contains(doc.SearchCombined, part), part)
	}
}

func TestWarningToDocWithoutApproval(t *testing.T) {
	w := models.Warning{ID: 1, Title: "t", ScammerName: "s", Content: "c", Status: models.StatusPending}
	doc := WarningToDoc(&w)
	assert.Empty(t, doc.ApprovedAt)
}
