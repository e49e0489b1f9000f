package handlers

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"quantdash-go-api/internal/models"
	"quantdash-go-api/internal/services"
)

var validate = validator.New()

type PortfolioHandler struct {
	service *services.PortfolioService
}

func NewPortfolioHandler(service *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		service: service,
	}
}

// Analyze handles POST /v1/portfolio/analyze
func (h *PortfolioHandler) Analyze(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 30*time.Second)
	defer cancel()

	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid request body",
			Message: err.Error(),
			Code:    400,
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(models.ErrorResponse{
			Error:   "Invalid analysis request",
			Message: err.Error(),
			Code:    400,
		})
	}

	result, err := h.service.Analyze(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// RefreshCache handles POST /v1/admin/refresh
func (h *PortfolioHandler) RefreshCache(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 60*time.Second)
	defer cancel()

	if err := h.service.RefreshCache(ctx); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Cache refreshed successfully",
		"time":    time.Now(),
	})
}
