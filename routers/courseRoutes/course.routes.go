package courseRoutes

import (
	controllers "coursify/controllers/course"
	"coursify/middleware"
	validators "coursify/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all course routes
func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/course")

	// Generation is model-backed, so it sits behind the rate limiter
	courseGroup.Post("/generate", middleware.JWTMiddleware, middleware.GenerationRateLimiter(), validators.GenerateCourse(), controllers.GenerateCourse)

	// Course listing and details
	courseGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	courseGroup.Get("/:id", middleware.JWTMiddleware, controllers.GetCourseDetails)
	courseGroup.Delete("/:id", middleware.JWTMiddleware, controllers.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:id/enroll", middleware.JWTMiddleware, controllers.EnrollInCourse)

	// Lesson reading triggers enrichment on first read
	courseGroup.Get("/:course_id/lesson/:lesson_id", middleware.JWTMiddleware, controllers.GetLesson)

	// Completion and progress
	courseGroup.Post("/:course_id/lesson/:lesson_id/complete", middleware.JWTMiddleware, controllers.MarkLessonComplete)
	courseGroup.Get("/:course_id/progress", middleware.JWTMiddleware, controllers.GetCourseProgress)
}
