package models

import (
	"time"

	"gorm.io/gorm"
)

type Warning struct {
	ID             uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Title          string          `gorm:"size:500;not null" json:"title"`
	ScammerName    string          `gorm:"size:255;not null;index" json:"scammer_name"`
	BankAccount    string          `gorm:"size:100;index" json:"bank_account"`
	BankName       string          `gorm:"size:100" json:"bank_name"`
	FacebookLink   string          `gorm:"size:500" json:"facebook_link"`
	Content        string          `gorm:"type:text;not null" json:"content"`
	Category       WarningCategory `gorm:"size:50;default:'other'" json:"category"`
	EvidenceImages StringList      `gorm:"type:text" json:"evidence_images"`
	Status         WarningStatus   `gorm:"size:20;default:'pending';index" json:"status"`
	ViewCount      int             `gorm:"default:0" json:"view_count"`
	SearchCount    int             `gorm:"default:0" json:"search_count"`
	WarningCount   int             `gorm:"default:1" json:"warning_count"`

	ReporterID       *uint  `json:"-"`
	ReporterName     string `gorm:"size:255" json:"reporter_name"`
	ReporterZalo     string `gorm:"size:50" json:"reporter_zalo"`
	IsAnonymous      bool   `gorm:"default:false" json:"is_anonymous"`
	ReporterNickname string `gorm:"size:100" json:"reporter_nickname"`

	ReviewerID *uint      `json:"-"`
	ReviewedAt *time.Time `json:"reviewed_at"`
	ReviewNote string     `gorm:"type:text" json:"review_note"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ApprovedAt *time.Time `json:"approved_at"`
}

func (w *Warning) BeforeSave(tx *gorm.DB) error {
	if w.Status == "" {
		w.Status = StatusPending
	}
	if !w.Status.Valid() {
		return invalidEnum("status", w.Status)
	}
	if w.Category == "" {
		w.Category = CategoryOther
	}
	if !w.Category.Valid() {
		return invalidEnum("category", w.Category)
	}
	if w.WarningCount < 1 {
		w.WarningCount = 1
	}
	return nil
}
