package rates

import (
	"time"

	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/amirasaad/kambialo/pkg/money"
	ratesvc "github.com/amirasaad/kambialo/pkg/service/rates"
)

// QuoteRequest represents the request body for a quotation.
// Manual rates are optional and replace the fetched ones.
type QuoteRequest struct {
	PriceUSD     *float64 `json:"price_usd" validate:"required,gte=0"`
	OfficialRate *float64 `json:"official_rate,omitempty" validate:"omitempty,gte=0"`
	MarketRate   *float64 `json:"market_rate,omitempty" validate:"omitempty,gte=0"`
	Save         bool     `json:"save"`
}

// RatesResponse is the current snapshot of both rates.
type RatesResponse struct {
	Official            *domain.RateQuote   `json:"official"`
	Market              *domain.MarketOffer `json:"market"`
	NeedsManualOfficial bool                `json:"needs_manual_official"`
	NeedsManualMarket   bool                `json:"needs_manual_market"`
}

// FormattedQuote holds display strings for the computed amounts.
type FormattedQuote struct {
	TotalLocalCurrency string `json:"total_local_currency"`
	AssetUnitsNeeded   string `json:"asset_units_needed"`
	RateDifference     string `json:"rate_difference,omitempty"`
}

// QuoteResponse represents the response structure for a quotation
type QuoteResponse struct {
	PriceUSD            float64              `json:"price_usd"`
	Official            domain.Rate          `json:"official"`
	Market              domain.Rate          `json:"market"`
	TotalLocalCurrency  float64              `json:"total_local_currency"`
	AssetUnitsNeeded    float64              `json:"asset_units_needed"`
	RateDifference      *float64             `json:"rate_difference,omitempty"`
	OfficialRetrievedAt *time.Time           `json:"official_retrieved_at,omitempty"`
	Offer               *domain.MarketOffer  `json:"offer,omitempty"`
	Formatted           FormattedQuote       `json:"formatted"`
	HistoryEntry        *domain.HistoryEntry `json:"history_entry,omitempty"`
}

// ToQuoteResponse converts a quotation to a response DTO
func ToQuoteResponse(q *ratesvc.Quotation) *QuoteResponse {
	if q == nil || q.Result == nil {
		return nil
	}
	res := q.Result
	out := &QuoteResponse{
		PriceUSD:           q.Input.PriceUSD,
		Official:           q.Official,
		Market:             q.Market,
		TotalLocalCurrency: res.TotalLocalCurrency,
		AssetUnitsNeeded:   res.AssetUnitsNeeded,
		RateDifference:     res.RateDifference,
		Offer:              q.Offer,
		HistoryEntry:       q.Entry,
		Formatted: FormattedQuote{
			TotalLocalCurrency: money.FormatCode(res.TotalLocalCurrency, money.VES),
			AssetUnitsNeeded:   money.FormatCode(res.AssetUnitsNeeded, money.USDT),
		},
	}
	if q.OfficialQuote != nil {
		out.OfficialRetrievedAt = q.OfficialQuote.RetrievedAt
	}
	if res.RateDifference != nil {
		out.Formatted.RateDifference = money.FormatCode(*res.RateDifference, money.VES)
	}
	return out
}

// missingRates lists the names of the rates a MissingRatesError reports.
func missingRates(err *domain.MissingRatesError) []string {
	var names []string
	if err.Official {
		names = append(names, "official_rate")
	}
	if err.Market {
		names = append(names, "market_rate")
	}
	return names
}
