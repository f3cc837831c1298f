package models

import "time"

// AdminProfile is the publicly displayable contact card of an admin user.
type AdminProfile struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint      `gorm:"unique;not null" json:"user_id"`
	User           User      `gorm:"foreignKey:UserID" json:"-"`
	AdminNumber    int       `gorm:"unique;not null" json:"admin_number"`
	FacebookMain   string    `gorm:"size:500" json:"facebook_main"`
	FacebookBackup string    `gorm:"size:500" json:"facebook_backup"`
	Zalo           string    `gorm:"size:50" json:"zalo"`
	Website        string    `gorm:"size:500" json:"website"`
	Services       JSONMap   `gorm:"type:text" json:"services"`
	BankAccounts   JSONMap   `gorm:"type:text" json:"bank_accounts"`
	InsuranceFund  float64   `gorm:"default:0" json:"insurance_fund"`
	IsPublic       bool      `gorm:"default:true" json:"is_public"`
	CreatedAt      time.Time `json:"created_at"`
}
