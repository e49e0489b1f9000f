package models

import "encoding/json"

// AnalyzeRequest represents the incoming portfolio analysis request
type AnalyzeRequest struct {
	Symbols   []string `json:"symbols" validate:"required,min=2,max=10,unique,dive,required"`
	Weighting string   `json:"weighting" validate:"required,oneof=equal_weight risk_parity min_variance max_sharpe"`
	Rebalance string   `json:"rebalance" validate:"required,oneof=daily weekly monthly quarterly"`
	Days      int      `json:"days" validate:"required,min=1"`
}

// PricePoint is one observation of a symbol's price history.
// Only date and close are guaranteed; OHLCV fields are present when the
// analytics service supplies them.
type PricePoint struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open,omitempty"`
	High   float64 `json:"high,omitempty"`
	Low    float64 `json:"low,omitempty"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume,omitempty"`
}

// ChartPoint is one row of the portfolio chart: the date, each symbol's
// normalized value keyed by the symbol itself, and the combined portfolio
// value. The symbol columns are dynamic keys on the wire, so the type
// carries its own JSON codec.
type ChartPoint struct {
	Date      string             `firestore:"date"`
	Values    map[string]float64 `firestore:"values"`
	Portfolio float64            `firestore:"portfolio"`
}

// MarshalJSON flattens the point into {"date": ..., "<SYM>": ..., "portfolio": ...}.
func (p ChartPoint) MarshalJSON() ([]byte, error) {
	row := make(map[string]interface{}, len(p.Values)+2)
	for symbol, value := range p.Values {
		row[symbol] = value
	}
	row["date"] = p.Date
	row["portfolio"] = p.Portfolio
	return json.Marshal(row)
}

// UnmarshalJSON reads the flat row back; every key other than "date" and
// "portfolio" is treated as a symbol column.
func (p *ChartPoint) UnmarshalJSON(data []byte) error {
	var row map[string]json.RawMessage
	if err := json.Unmarshal(data, &row); err != nil {
		return err
	}
	p.Values = make(map[string]float64, len(row))
	for key, raw := range row {
		switch key {
		case "date":
			if err := json.Unmarshal(raw, &p.Date); err != nil {
				return err
			}
		case "portfolio":
			if err := json.Unmarshal(raw, &p.Portfolio); err != nil {
				return err
			}
		default:
			var value float64
			if err := json.Unmarshal(raw, &value); err != nil {
				return err
			}
			p.Values[key] = value
		}
	}
	return nil
}

// CorrelationEntry is one cell of the flattened correlation matrix
type CorrelationEntry struct {
	Asset1      string  `json:"asset1"`
	Asset2      string  `json:"asset2"`
	Correlation float64 `json:"correlation"`
}

// IndividualMetrics holds per-asset performance numbers computed upstream.
// They are opaque pass-throughs; this layer never recomputes them.
type IndividualMetrics struct {
	TotalReturn       float64   `json:"total_return"`
	AnnualizedReturn  float64   `json:"annualized_return"`
	Volatility        float64   `json:"volatility"`
	SharpeRatio       float64   `json:"sharpe_ratio"`
	MaxDrawdown       float64   `json:"max_drawdown"`
	CumulativeReturns []float64 `json:"cumulative_returns,omitempty"`
}

// PortfolioMetrics holds portfolio-level performance numbers
type PortfolioMetrics struct {
	TotalReturn          float64 `json:"total_return"`
	AnnualizedReturn     float64 `json:"annualized_return"`
	Volatility           float64 `json:"volatility"`
	SharpeRatio          float64 `json:"sharpe_ratio"`
	MaxDrawdown          float64 `json:"max_drawdown"`
	DiversificationRatio float64 `json:"diversification_ratio"`
}

// AnalyzeResponse is the analytics service's reply to a portfolio analysis.
// correlation_matrix may be partial and chart_data may be absent entirely;
// both cases are handled downstream.
type AnalyzeResponse struct {
	CorrelationMatrix    map[string]map[string]float64 `json:"correlation_matrix"`
	Weights              map[string]float64            `json:"weights"`
	IndividualMetrics    map[string]IndividualMetrics  `json:"individual_metrics"`
	PortfolioMetrics     PortfolioMetrics              `json:"portfolio_metrics"`
	DiversificationRatio float64                       `json:"diversification_ratio"`
	Histories            map[string][]PricePoint       `json:"histories"`
	ChartData            []ChartPoint                  `json:"chart_data,omitempty"`
}

// PortfolioResult is the assembled analysis consumed by the dashboard
type PortfolioResult struct {
	Symbols           []string                     `json:"symbols"`
	Weighting         string                       `json:"weighting"`
	Rebalance         string                       `json:"rebalance"`
	Weights           map[string]float64           `json:"weights"`
	Metrics           PortfolioMetrics             `json:"metrics"`
	IndividualMetrics map[string]IndividualMetrics `json:"individual_metrics"`
	Correlations      []CorrelationEntry           `json:"correlation_matrix"`
	ChartData         []ChartPoint                 `json:"chart_data"`
}

// AssetHistoryResult is the proxied price history for a single symbol
type AssetHistoryResult struct {
	Symbol string       `json:"symbol"`
	Days   int          `json:"days"`
	Data   []PricePoint `json:"data"`
	Count  int          `json:"count"`
}

// AssetMetricsResult is the single-asset metrics view. MaxDrawdown here is
// always a positive magnitude; see services.AssetMetrics.
type AssetMetricsResult struct {
	Symbol  string            `json:"symbol"`
	Days    int               `json:"days"`
	Metrics IndividualMetrics `json:"metrics"`
}

// ErrorResponse represents API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code"`
}
