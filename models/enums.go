package models

import "fmt"

// Status, role, category and report type columns are stored as strings but
// only ever hold one of the closed sets below. BeforeSave hooks reject
// anything else, so the database never sees a value outside the enum.

type WarningStatus string

const (
	StatusPending  WarningStatus = "pending"
	StatusApproved WarningStatus = "approved"
	StatusRejected WarningStatus = "rejected"
	StatusDeleted  WarningStatus = "deleted"
)

func (s WarningStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusDeleted:
		return true
	}
	return false
}

type WarningCategory string

const (
	CategoryFacebook   WarningCategory = "facebook"
	CategoryZalo       WarningCategory = "zalo"
	CategoryBanking    WarningCategory = "banking"
	CategoryGaming     WarningCategory = "gaming"
	CategoryEcommerce  WarningCategory = "ecommerce"
	CategoryInvestment WarningCategory = "investment"
	CategoryOther      WarningCategory = "other"
)

func (c WarningCategory) Valid() bool {
	switch c {
	case CategoryFacebook, CategoryZalo, CategoryBanking, CategoryGaming,
		CategoryEcommerce, CategoryInvestment, CategoryOther:
		return true
	}
	return false
}

type UserRole string

const (
	RoleUser      UserRole = "user"
	RoleAdmin     UserRole = "admin"
	RoleModerator UserRole = "moderator"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleModerator:
		return true
	}
	return false
}

// IsStaff reports whether the role may use admin endpoints. Super admin
// endpoints additionally require the role to be exactly RoleAdmin.
func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleModerator
}

type ReportType string

const (
	ReportTypeScam    ReportType = "scam"
	ReportTypeWebsite ReportType = "website"
)

func (t ReportType) Valid() bool {
	return t == ReportTypeScam || t == ReportTypeWebsite
}

func invalidEnum(column string, value interface{}) error {
	return fmt.Errorf("invalid %s value: %v", column, value)
}
