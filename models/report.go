package models

import (
	"time"

	"gorm.io/gorm"
)

// Report is the moderation intake record. A scam report names a person or a
// bank account; a website report names a fraudulent URL.
type Report struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportType ReportType `gorm:"size:50;not null" json:"report_type"`

	ScammerName  string `gorm:"size:255" json:"scammer_name"`
	BankAccount  string `gorm:"size:100" json:"bank_account"`
	BankName     string `gorm:"size:100" json:"bank_name"`
	FacebookLink string `gorm:"size:500" json:"facebook_link"`

	WebsiteURL      string `gorm:"size:500" json:"website_url"`
	WebsiteCategory string `gorm:"size:100" json:"website_category"`

	Content        string          `gorm:"type:text;not null" json:"content"`
	EvidenceImages StringList      `gorm:"type:text" json:"evidence_images"`
	Category       WarningCategory `gorm:"size:50;default:'other'" json:"category"`
	Status         WarningStatus   `gorm:"size:20;default:'pending'" json:"status"`

	ReporterID    *uint  `json:"-"`
	ReporterName  string `gorm:"size:255" json:"reporter_name"`
	ReporterZalo  string `gorm:"size:50" json:"reporter_zalo"`
	ReporterEmail string `gorm:"size:255" json:"reporter_email"`
	AgreeTerms    bool   `gorm:"default:false" json:"agree_terms"`

	ReviewerID *uint      `json:"-"`
	ReviewedAt *time.Time `json:"reviewed_at"`

	CreatedAt time.Time `json:"created_at"`
}

func (r *Report) BeforeSave(tx *gorm.DB) error {
	if !r.ReportType.Valid() {
		return invalidEnum("report_type", r.ReportType)
	}
	if r.Status == "" {
		r.Status = StatusPending
	}
	if !r.Status.Valid() {
		return invalidEnum("status", r.Status)
	}
	if r.Category == "" {
		r.Category = CategoryOther
	}
	if !r.Category.Valid() {
		return invalidEnum("category", r.Category)
	}
	return nil
}
