// Package analytics is the client for the remote quote/analytics service.
// The client is constructed with its base URL and transport instead of
// reading ambient globals, so tests and alternate environments can supply
// their own. Responses are decoded and shape-checked at this boundary: a
// transport failure or non-success status surfaces as a ServiceError, a
// response we cannot decode into the agreed shape surfaces as a DataError.
// The client never retries.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"quantdash-go-api/internal/apperrors"
	"quantdash-go-api/internal/models"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger
}

// NewClient creates an analytics service client. A nil httpClient gets a
// default with a 30s timeout.
func NewClient(baseURL string, httpClient *http.Client, log *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 30 * time.Second,
		}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

// AnalyzePortfolio requests a full portfolio analysis for the symbol set.
func (c *Client) AnalyzePortfolio(ctx context.Context, req models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	body, err := c.do(ctx, "POST", "/api/portfolio/analyze", req)
	if err != nil {
		return nil, err
	}

	var resp models.AnalyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.WrapDataError(err, "analytics service returned an undecodable analysis response")
	}

	for symbol, history := range resp.Histories {
		if err := validateHistory(symbol, history); err != nil {
			return nil, err
		}
	}

	return &resp, nil
}

type assetHistoryResponse struct {
	Symbol string              `json:"symbol"`
	Data   []models.PricePoint `json:"data"`
	Count  int                 `json:"count"`
}

// AssetHistory fetches the ordered price history for one symbol.
func (c *Client) AssetHistory(ctx context.Context, symbol string, days int) ([]models.PricePoint, error) {
	path := fmt.Sprintf("/api/asset/%s/history?days=%d", symbol, days)
	body, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp assetHistoryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.WrapDataError(err, "analytics service returned an undecodable history for %s", symbol)
	}
	if err := validateHistory(symbol, resp.Data); err != nil {
		return nil, err
	}

	return resp.Data, nil
}

type assetMetricsResponse struct {
	Symbol  string                   `json:"symbol"`
	Metrics models.IndividualMetrics `json:"metrics"`
}

// AssetMetrics fetches the upstream-computed metrics for one symbol. The
// max_drawdown sign is returned exactly as the service reported it; display
// normalization happens in the service layer.
func (c *Client) AssetMetrics(ctx context.Context, symbol string, days int) (*models.IndividualMetrics, error) {
	path := fmt.Sprintf("/api/asset/%s/metrics?days=%d", symbol, days)
	body, err := c.do(ctx, "GET", path, nil)
	if err != nil {
		return nil, err
	}

	var resp assetMetricsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, apperrors.WrapDataError(err, "analytics service returned undecodable metrics for %s", symbol)
	}

	return &resp.Metrics, nil
}

// do executes one request and returns the response body. Non-2xx statuses
// and transport failures become ServiceErrors carrying the upstream detail.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewServiceError(0, err.Error(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewServiceError(resp.StatusCode, "failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("analytics service request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return nil, apperrors.NewServiceError(resp.StatusCode, string(body), nil)
	}

	return body, nil
}

// validateHistory enforces the one history invariant checkable at this
// boundary: dates are strictly increasing. Dates are ISO formatted, so
// string order is date order.
func validateHistory(symbol string, history []models.PricePoint) error {
	for i := 1; i < len(history); i++ {
		if history[i].Date <= history[i-1].Date {
			return apperrors.NewDataError("history for %s is not strictly increasing at %s", symbol, history[i].Date)
		}
	}
	return nil
}
