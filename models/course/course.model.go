package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Course represents a generated learning course
type Course struct {
	gorm.Model
	PublicID       string         `json:"public_id" gorm:"uniqueIndex;size:36"`
	UserID         uint           `json:"user_id" gorm:"index;not null"` // creator
	Topic          string         `json:"topic"`                         // free-text topic the course was generated from
	Title          string         `json:"title"`
	Description    string         `json:"description"`
	Difficulty     string         `json:"difficulty" gorm:"default:'beginner'"` // beginner, intermediate, advanced
	EstimatedHours float64        `json:"estimated_hours" gorm:"default:0"`
	Tags           datatypes.JSON `json:"tags"` // JSON array of strings
	ThumbnailURL   string         `json:"thumbnail_url"`
	IsDeleted      bool           `gorm:"default:false"`

	Modules []Module `json:"modules,omitempty" gorm:"foreignKey:CourseID"`
}
