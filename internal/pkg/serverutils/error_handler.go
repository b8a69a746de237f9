package serverutils

import (
	"errors"

	"meal-planner-be/internal/pkg/apperror"
	"meal-planner-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware is installed as fiber's ErrorHandler. Controllers
// return errors and this turns them into the JSON error envelope.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if appErr, ok := apperror.As(err); ok {
			status := appErr.StatusCode()
			if status >= fiber.StatusInternalServerError {
				log.Error("HTTP", appErr.Message, map[string]interface{}{
					"path":  ctx.Path(),
					"code":  string(appErr.Code),
					"error": err.Error(),
				})
			}
			return ctx.Status(status).JSON(ErrorBody{
				Success:         false,
				Code:            status,
				ErrorCode:       string(appErr.Code),
				Message:         appErr.Message,
				Details:         appErr.Details,
				UpgradeRequired: appErr.UpgradeRequired,
			})
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		log.Error("HTTP", "Unhandled error", map[string]interface{}{
			"path":  ctx.Path(),
			"error": err.Error(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "Internal server error"))
	}
}
