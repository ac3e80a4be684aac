package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"realestate-buyer-be/internal/constant"
	"realestate-buyer-be/internal/pkg/logger"
)

// ErrorHandlerMiddleware maps errors escaping a handler onto the
// envelope. Not-found sentinels become 404, fiber errors keep their
// status, anything else is a 500.
func ErrorHandlerMiddleware(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		if errors.Is(err, constant.ErrSessionNotFound) ||
			errors.Is(err, constant.ErrTranscriptNotFound) ||
			errors.Is(err, constant.ErrProfileNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(ErrorResponse("NOT_FOUND", err.Error()))
		}

		var apiErr *ApiError
		if errors.As(err, &apiErr) {
			return ctx.Status(fiber.StatusOK).JSON(ApiErrorResponse(apiErr))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse("HTTP_ERROR", fiberErr.Message))
		}

		log.Error("server", "unhandled error", map[string]interface{}{
			"error": err.Error(),
			"path":  ctx.Path(),
		})
		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("INTERNAL_ERROR", "internal server error"))
	}
}
