package aiController

import (
	"coursify/middleware"
	"coursify/services/generation"

	"github.com/gofiber/fiber/v2"
)

// Translate renders input text into Hinglish
func Translate(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedTranslate").(*struct {
		Text string `json:"text"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	translated, err := generation.Default.Translate(c.UserContext(), reqData.Text)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Translation failed. Please retry.", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Translated successfully!", fiber.Map{
		"translated": translated,
	})
}

// SuggestTopics lists course topic suggestions for a partial input. This
// endpoint never fails: on any problem it returns an empty list.
func SuggestTopics(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	partial := c.Query("q")
	topics := generation.Default.SuggestTopics(c.UserContext(), partial)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Suggestions fetched successfully!", fiber.Map{
		"suggestions": topics,
	})
}
