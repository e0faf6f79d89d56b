package courseController

import (
	"time"

	"coursify/database"
	"coursify/middleware"
	courseModels "coursify/models/course"

	"github.com/gofiber/fiber/v2"
)

// EnrollInCourse enrolls the requesting user into a course
func EnrollInCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := c.ParamsInt("id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	db := database.Database.Db

	var crs courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Already enrolled?
	var existing courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Already enrolled in this course!", existing)
	}

	var totalLessons int64
	db.Model(&courseModels.Lesson{}).Where("course_id = ? AND is_deleted = ?", courseId, false).Count(&totalLessons)

	enrollment := courseModels.Enrollment{
		UserID:       userId,
		CourseID:     uint(courseId),
		Status:       "ENROLLED",
		TotalLessons: int(totalLessons),
	}
	if err := db.Create(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled successfully!", enrollment)
}

// MarkLessonComplete records completion of a lesson and updates progress
func MarkLessonComplete(c *fiber.Ctx) error {
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

	var enrollment courseModels.Enrollment
	if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonId, courseId, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	// Idempotent: a repeated completion is a no-op
	var existing courseModels.LessonCompletion
	if err := db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userId, lessonId, false).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed!", enrollment)
	}

	completion := courseModels.LessonCompletion{
		UserID:   userId,
		CourseID: uint(courseId),
		LessonID: uint(lessonId),
	}
	if err := db.Create(&completion).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson complete!", nil)
	}

	// Refresh progress
	var completed int64
	db.Model(&courseModels.LessonCompletion{}).
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		Count(&completed)

	enrollment.CompletedLessons = int(completed)
	if enrollment.TotalLessons > 0 {
		enrollment.Progress = float64(completed) / float64(enrollment.TotalLessons) * 100
	}
	enrollment.Status = "IN_PROGRESS"
	if enrollment.TotalLessons > 0 && int(completed) >= enrollment.TotalLessons {
		now := time.Now()
		enrollment.Status = "COMPLETED"
		enrollment.CompletedAt = &now
	}
	db.Save(&enrollment)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked complete!", enrollment)
}

// GetCourseProgress returns the user's enrollment progress for a course
func GetCourseProgress(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	courseId, err := c.ParamsInt("course_id")
	if err != nil || courseId < 1 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course id!", nil)
	}

	var enrollment courseModels.Enrollment
	if err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Enrollment not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", enrollment)
}
