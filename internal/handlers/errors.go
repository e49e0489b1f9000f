package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"quantdash-go-api/internal/apperrors"
	"quantdash-go-api/internal/models"
)

// CustomErrorHandler maps the error taxonomy to HTTP responses. A failed
// analysis produces only an error body — never a partially populated
// result.
func CustomErrorHandler(c *fiber.Ctx, err error) error {
	var serviceErr *apperrors.ServiceError
	if errors.As(err, &serviceErr) {
		return c.Status(fiber.StatusBadGateway).JSON(models.ErrorResponse{
			Error:   "Analytics service failed",
			Message: serviceErr.Error(),
			Code:    fiber.StatusBadGateway,
		})
	}

	var dataErr *apperrors.DataError
	if errors.As(err, &dataErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
			Error:   "Malformed analytics data",
			Message: dataErr.Error(),
			Code:    fiber.StatusUnprocessableEntity,
		})
	}

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error:   "Request failed",
		Message: err.Error(),
		Code:    code,
	})
}
