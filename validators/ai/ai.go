package aiValidator

import (
	"coursify/middleware"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func Translate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(struct {
			Text string `json:"text"`
		})

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if strings.TrimSpace(reqData.Text) == "" {
			errors["text"] = "Text is required!"
		} else if len(reqData.Text) > 5000 {
			errors["text"] = "Text must be at most 5000 characters long!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedTranslate", reqData)
		return c.Next()
	}
}
