package handlers

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"quantdash-go-api/internal/models"
	"quantdash-go-api/internal/services"
)

type AssetHandler struct {
	service *services.PortfolioService
}

func NewAssetHandler(service *services.PortfolioService) *AssetHandler {
	return &AssetHandler{
		service: service,
	}
}

// History handles GET /v1/assets/:symbol/history
func (h *AssetHandler) History(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	symbol, days, errResp := assetParams(c)
	if errResp != nil {
		return c.Status(errResp.Code).JSON(errResp)
	}

	result, err := h.service.AssetHistory(ctx, symbol, days)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Metrics handles GET /v1/assets/:symbol/metrics
func (h *AssetHandler) Metrics(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 10*time.Second)
	defer cancel()

	symbol, days, errResp := assetParams(c)
	if errResp != nil {
		return c.Status(errResp.Code).JSON(errResp)
	}

	result, err := h.service.AssetMetrics(ctx, symbol, days)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

func assetParams(c *fiber.Ctx) (string, int, *models.ErrorResponse) {
	symbol := c.Params("symbol")
	if symbol == "" {
		return "", 0, &models.ErrorResponse{Error: "Symbol is required", Code: 400}
	}

	days, err := strconv.Atoi(c.Query("days", "365"))
	if err != nil || days < 1 {
		return "", 0, &models.ErrorResponse{Error: "days must be a positive integer", Code: 400}
	}

	return symbol, days, nil
}
