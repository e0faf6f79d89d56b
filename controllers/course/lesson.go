package courseController

import (
	"coursify/database"
	"coursify/middleware"
	courseModels "coursify/models/course"
	"coursify/services/generation"

	"github.com/gofiber/fiber/v2"
)

// GetLesson returns a lesson's content, generating it on first read. When
// generation fails the placeholder content is still returned so the client
// has something to render, along with a retry hint.
func GetLesson(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := c.ParamsInt("course_id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}
	lessonId, err := c.ParamsInt("lesson_id")
	if err != nil || lessonId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid lesson id!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if crs.UserID != userId {
		var enrollment courseModels.Enrollment
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
			First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
	}

	var check courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonId, courseId, false).
		First(&check).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	lesson, genErr := generation.Default.EnrichLessonOnRead(c.UserContext(), uint(lessonId))
	if lesson == nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load lesson!", nil)
	}
	if genErr != nil {
		// Placeholder returned; tell the client to retry
		status, message := generationErrorResponse(genErr)
		return middleware.JsonResponse(c, status, false, message, fiber.Map{
			"lesson":    lesson,
			"retryable": true,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", lesson)
}
