package models

import "gorm.io/gorm"

// LoginTracking records login attempts for audit purposes
type LoginTracking struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	IPAddress string `json:"ip_address"`
	UserAgent string `json:"user_agent"`
	Success   bool   `json:"success" gorm:"default:false"`
	IsDeleted bool   `gorm:"default:false"`
}
