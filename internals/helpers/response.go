package helper

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// Bentuk respons mengikuti API lama: JSON flat, error selalu {"error": ...}.

// ✅ Error sederhana
func Error(c *fiber.Ctx, code int, message string) error {
	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}

// ✅ Error dengan field tambahan (mis. detail konflik nama)
func ErrorWithDetails(c *fiber.Ctx, code int, message string, extra fiber.Map) error {
	body := fiber.Map{"error": message}
	for k, v := range extra {
		body[k] = v
	}
	return c.Status(code).JSON(body)
}

// ✅ Khusus error validasi (validator.v10) — per-field tag map
func ValidationError(c *fiber.Ctx, err error) error {
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return Error(c, fiber.StatusBadRequest, "Invalid input")
	}

	errorsMap := make(map[string]string)
	for _, fieldErr := range ve {
		errorsMap[fieldErr.Field()] = fieldErr.Tag()
	}

	return ErrorWithDetails(c, fiber.StatusBadRequest, "Validasi gagal", fiber.Map{
		"details": errorsMap,
	})
}
