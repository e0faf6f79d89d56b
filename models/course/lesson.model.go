package course

import (
	"encoding/json"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Lesson represents a single lesson within a module. Lessons are created as
// placeholders and filled with generated content on first read.
type Lesson struct {
	gorm.Model
	CourseID         uint           `json:"course_id" gorm:"index;not null"`
	ModuleID         uint           `json:"module_id" gorm:"index;not null"`
	Title            string         `json:"title"`
	OrderIndex       int            `json:"order_index" gorm:"default:0"` // Lesson order in module
	Content          datatypes.JSON `json:"content"`                      // JSON array of content blocks
	Objectives       datatypes.JSON `json:"objectives"`                   // JSON array of strings
	EstimatedMinutes int            `json:"estimated_minutes" gorm:"default:0"`
	IsEnriched       bool           `json:"is_enriched" gorm:"default:false"`
	ReadingTime      int            `json:"reading_time" gorm:"default:1"` // minutes, word count / 200 rounded up
	IsDeleted        bool           `gorm:"default:false"`
}

// LessonCompletion tracks a user's completion of a lesson
type LessonCompletion struct {
	gorm.Model
	UserID    uint   `json:"user_id" gorm:"index;not null"`
	CourseID  uint   `json:"course_id" gorm:"index;not null"`
	LessonID  uint   `json:"lesson_id" gorm:"index;not null"`
	Status    string `json:"status" gorm:"default:'COMPLETED'"`
	IsDeleted bool   `gorm:"default:false"`
}

// readable fields counted towards reading time
var readableKeys = []string{"text", "question"}

// ReadingTimeFromContent derives reading time in minutes from a content block
// array: total word count / 200 rounded up, minimum 1.
func ReadingTimeFromContent(content datatypes.JSON) int {
	var blocks []map[string]interface{}
	if err := json.Unmarshal(content, &blocks); err != nil {
		return 1
	}

	words := 0
	for _, block := range blocks {
		for _, key := range readableKeys {
			if s, ok := block[key].(string); ok {
				words += len(strings.Fields(s))
			}
		}
		for _, key := range []string{"items", "options"} {
			if list, ok := block[key].([]interface{}); ok {
				for _, item := range list {
					if s, ok := item.(string); ok {
						words += len(strings.Fields(s))
					}
				}
			}
		}
	}

	minutes := (words + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
