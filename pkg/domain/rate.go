package domain

import "time"

// RateQuote is one externally obtained exchange rate.
type RateQuote struct {
	Rate        float64    `json:"rate"`
	RetrievedAt *time.Time `json:"retrieved_at,omitempty"`
	Source      string     `json:"source,omitempty"`
}

// MarketOffer is the best sell offer found on a peer-to-peer marketplace.
type MarketOffer struct {
	Price             float64   `json:"price"`
	CounterpartyLabel string    `json:"counterparty"`
	MinAmount         float64   `json:"min_amount"`
	MaxAmount         float64   `json:"max_amount"`
	RetrievedAt       time.Time `json:"retrieved_at"`
}

// RateOrigin tells whether a rate came from a remote source or was typed in.
type RateOrigin string

const (
	RateFetched RateOrigin = "fetched"
	RateManual  RateOrigin = "manual"
)

// Rate is a rate value together with where it came from.
type Rate struct {
	Value  float64    `json:"value"`
	Origin RateOrigin `json:"origin"`
}

// FetchedRate wraps a value obtained from a provider.
func FetchedRate(v float64) Rate {
	return Rate{Value: v, Origin: RateFetched}
}

// ManualRate wraps a value entered by the user.
func ManualRate(v float64) Rate {
	return Rate{Value: v, Origin: RateManual}
}
