package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string     `gorm:"size:100;unique;not null" json:"username"`
	Email        string     `gorm:"size:255;index" json:"email"`
	Phone        string     `gorm:"size:20;index" json:"phone"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         UserRole   `gorm:"size:20;default:'user'" json:"role"`
	FullName     string     `gorm:"size:255" json:"full_name"`
	AvatarURL    string     `gorm:"size:500" json:"avatar_url"`
	ZaloContact  string     `gorm:"size:50" json:"zalo_contact"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	IsVerified   bool       `gorm:"default:false" json:"is_verified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLogin    *time.Time `json:"last_login"`
}

func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = RoleUser
	}
	if !u.Role.Valid() {
		return invalidEnum("role", u.Role)
	}
	return nil
}
