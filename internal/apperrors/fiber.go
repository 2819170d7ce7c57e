package apperrors

import (
	"errors"

	"pazaryeri-kar/internal/logger"

	"github.com/gofiber/fiber/v2"
)

// FiberErrorHandler uygulama hatalarını ve fiber hatalarını {"error": "..."} gövdesine çevirir
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Code >= fiber.StatusInternalServerError {
			logger.Error("İstek başarısız", err)
		}
		body := fiber.Map{"error": appErr.Message}
		if appErr.Err != nil && appErr.Code < fiber.StatusInternalServerError {
			body["detail"] = appErr.Err.Error()
		}
		return c.Status(appErr.Code).JSON(body)
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
		})
	}

	logger.Error("Beklenmeyen hata", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Beklenmeyen sunucu hatası",
	})
}
