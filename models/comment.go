package models

import "time"

type Comment struct {
	ID               uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	WarningID        uint      `gorm:"not null;index" json:"warning_id"`
	Warning          Warning   `gorm:"foreignKey:WarningID" json:"-"`
	UserID           uint      `gorm:"not null" json:"user_id"`
	User             User      `gorm:"foreignKey:UserID" json:"-"`
	Content          string    `gorm:"type:text;not null" json:"content"`
	IsVerifiedVictim bool      `gorm:"default:false" json:"is_verified_victim"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
