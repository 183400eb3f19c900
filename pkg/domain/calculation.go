package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalculationInput is the user supplied price.
type CalculationInput struct {
	PriceUSD float64 `json:"price_usd"`
}

// CalculationResult holds the figures derived from a price and two rates.
type CalculationResult struct {
	OfficialRate       float64  `json:"official_rate"`
	MarketRate         float64  `json:"market_rate"`
	TotalLocalCurrency float64  `json:"total_local_currency"`
	AssetUnitsNeeded   float64  `json:"asset_units_needed"`
	RateDifference     *float64 `json:"rate_difference,omitempty"`
}

// HistoryEntry is one past calculation of a session.
type HistoryEntry struct {
	ID                 uuid.UUID `json:"id"`
	RecordedAt         time.Time `json:"recorded_at"`
	PriceUSD           float64   `json:"price_usd"`
	OfficialRate       float64   `json:"official_rate"`
	MarketRate         float64   `json:"market_rate"`
	TotalLocalCurrency float64   `json:"total_local_currency"`
	AssetUnitsNeeded   float64   `json:"asset_units_needed"`
	RateDifference     *float64  `json:"rate_difference,omitempty"`
	Counterparty       string    `json:"counterparty,omitempty"`
}

// NewHistoryEntry builds an entry from a price and its result.
func NewHistoryEntry(in CalculationInput, res *CalculationResult) HistoryEntry {
	return HistoryEntry{
		PriceUSD:           in.PriceUSD,
		OfficialRate:       res.OfficialRate,
		MarketRate:         res.MarketRate,
		TotalLocalCurrency: res.TotalLocalCurrency,
		AssetUnitsNeeded:   res.AssetUnitsNeeded,
		RateDifference:     res.RateDifference,
	}
}
