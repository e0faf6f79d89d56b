package generation

import (
	"encoding/json"

	"coursify/models/course"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlaceholderText is the body of the single paragraph block every lesson
// starts with before enrichment.
const PlaceholderText = "This lesson is being prepared. Open it again in a moment to see the full content."

// PlaceholderContent returns the content array a lesson is created with.
func PlaceholderContent() datatypes.JSON {
	blocks := []ContentBlock{{Type: BlockParagraph, Text: PlaceholderText}}
	raw, _ := json.Marshal(blocks)
	return datatypes.JSON(raw)
}

// BuildCourseTree persists a validated outline as a Course with its Modules
// and placeholder Lessons. The whole tree is created in one transaction:
// any failure rolls everything back, so no orphaned modules or lessons can
// reference a nonexistent course.
func BuildCourseTree(db *gorm.DB, userID uint, topic string, outline *CourseOutline) (*course.Course, error) {
	tags, err := json.Marshal(outline.Tags)
	if err != nil {
		tags = []byte("[]")
	}

	created := course.Course{
		PublicID:       uuid.NewString(),
		UserID:         userID,
		Topic:          topic,
		Title:          outline.Title,
		Description:    outline.Description,
		Difficulty:     outline.Difficulty,
		EstimatedHours: outline.EstimatedHours,
		Tags:           datatypes.JSON(tags),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for i := range outline.Modules {
			mod := &outline.Modules[i]

			orderIndex := i
			if mod.Order != nil {
				orderIndex = *mod.Order
			}
			module := course.Module{
				CourseID:    created.ID,
				Title:       mod.Title,
				Description: mod.Description,
				OrderIndex:  orderIndex,
			}
			if err := tx.Create(&module).Error; err != nil {
				return err
			}

			for j := range mod.Lessons {
				stub := &mod.Lessons[j]

				lessonOrder := j
				if stub.Order != nil {
					lessonOrder = *stub.Order
				}
				lesson := course.Lesson{
					CourseID:    created.ID,
					ModuleID:    module.ID,
					Title:       stub.Title,
					OrderIndex:  lessonOrder,
					Content:     PlaceholderContent(),
					Objectives:  datatypes.JSON([]byte("[]")),
					IsEnriched:  false,
					ReadingTime: 1,
				}
				if err := tx.Create(&lesson).Error; err != nil {
					return err
				}
				module.Lessons = append(module.Lessons, lesson)
			}

			created.Modules = append(created.Modules, module)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &created, nil
}
