package aiRoutes

import (
	controllers "coursify/controllers/ai"
	"coursify/middleware"
	validators "coursify/validators/ai"

	"github.com/gofiber/fiber/v2"
)

// SetupAiRoutes sets up the auxiliary generation routes
func SetupAiRoutes(app *fiber.App) {
	aiGroup := app.Group("/ai", middleware.JWTMiddleware, middleware.GenerationRateLimiter())

	aiGroup.Post("/translate", validators.Translate(), controllers.Translate)
	aiGroup.Get("/suggest", controllers.SuggestTopics)
}
