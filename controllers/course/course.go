package courseController

import (
	"errors"
	"log"

	"coursify/database"
	"coursify/middleware"
	"coursify/models"
	courseModels "coursify/models/course"
	"coursify/services/generation"
	"coursify/utils"

	"github.com/gofiber/fiber/v2"
)

// GenerateCourse creates a full course tree from a free-text topic
func GenerateCourse(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userId, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedGenerate").(*struct {
		Topic string `json:"topic"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	created, err := generation.Default.CreateCourse(c.UserContext(), userId, reqData.Topic)
	if err != nil {
		status, message := generationErrorResponse(err)
		return middleware.JsonResponse(c, status, false, message, nil)
	}

	// Creator notification must not block the response
	go func(name, email, title string) {
		if err := utils.SendCourseReadyEmail(name, email, title); err != nil {
			log.Printf("Error sending course ready email: %v", err)
		}
	}(user.Name, user.Email, created.Title)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course generated successfully!", created)
}

// GetAllCourses lists the requesting user's courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedList").(*struct {
		Page  *int `json:"page"`
		Limit *int `json:"limit"`
	})

	page := 1
	limit := 10
	if ok {
		if reqData.Page != nil {
			page = *reqData.Page
		}
		if reqData.Limit != nil {
			limit = *reqData.Limit
		}
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("user_id = ? AND is_deleted = ?", userId, false)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetCourseDetails returns one course with its module/lesson tree
func GetCourseDetails(c *fiber.Ctx) error {
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
	if err := db.Where("id = ? AND is_deleted = ?", courseId, false).
		Preload("Modules", "is_deleted = ?", false).
		Preload("Modules.Lessons", "is_deleted = ?", false).
		First(&crs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	// Courses are visible to their creator and to enrolled users
	if crs.UserID != userId {
		var enrollment courseModels.Enrollment
		if err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userId, courseId, false).
			First(&enrollment).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "You are not enrolled in this course!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", crs)
}

// DeleteCourse soft-deletes a course with its modules and lessons
func DeleteCourse(c *fiber.Ctx) error {
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
	if crs.UserID != userId {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Only the course creator can delete it!", nil)
	}

	// Cascade the soft delete down the tree
	if err := db.Model(&courseModels.Course{}).Where("id = ?", courseId).Update("is_deleted", true).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}
	db.Model(&courseModels.Module{}).Where("course_id = ?", courseId).Update("is_deleted", true)
	db.Model(&courseModels.Lesson{}).Where("course_id = ?", courseId).Update("is_deleted", true)
	db.Model(&courseModels.Enrollment{}).Where("course_id = ?", courseId).Update("is_deleted", true)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully!", nil)
}

// generationErrorResponse maps the generation error taxonomy onto HTTP
// responses the client can act on.
func generationErrorResponse(err error) (int, string) {
	var inputErr *generation.InputError
	if errors.As(err, &inputErr) {
		return fiber.StatusBadRequest, inputErr.Error()
	}
	var transportErr *generation.TransportError
	if errors.As(err, &transportErr) {
		return fiber.StatusServiceUnavailable, "The AI service is unavailable right now. Please retry."
	}
	var extractionErr *generation.ExtractionError
	var malformedErr *generation.MalformedResponseError
	var schemaErr *generation.SchemaViolationError
	if errors.As(err, &extractionErr) || errors.As(err, &malformedErr) || errors.As(err, &schemaErr) {
		log.Printf("Generation produced unusable output: %v", err)
		return fiber.StatusBadGateway, "The AI produced an unusable response. Please retry."
	}
	log.Printf("Unexpected generation error: %v", err)
	return fiber.StatusInternalServerError, "Failed to generate course!"
}
