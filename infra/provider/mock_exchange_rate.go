package provider

import (
	"context"
	"time"

	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/amirasaad/kambialo/pkg/provider"
)

// StaticMarketRate is a provider.MarketRate returning a fixed offer. It is
// used for offline runs and tests.
type StaticMarketRate struct {
	FetchFunc func(ctx context.Context) (*domain.MarketOffer, error)
}

// NewStaticMarketRate returns a provider that always offers price.
func NewStaticMarketRate(price float64) *StaticMarketRate {
	return &StaticMarketRate{
		FetchFunc: func(context.Context) (*domain.MarketOffer, error) {
			return &domain.MarketOffer{
				Price:             price,
				CounterpartyLabel: "static",
				RetrievedAt:       time.Now(),
			}, nil
		},
	}
}

func (m *StaticMarketRate) FetchBestOffer(ctx context.Context) (*domain.MarketOffer, error) {
	return m.FetchFunc(ctx)
}

func (m *StaticMarketRate) Name() string {
	return "static-market"
}

// StaticOfficialRate is a provider.OfficialRate returning a fixed quote.
type StaticOfficialRate struct {
	FetchFunc func(ctx context.Context) (*domain.RateQuote, error)
}

// NewStaticOfficialRate returns a provider that always quotes rate.
func NewStaticOfficialRate(rate float64) *StaticOfficialRate {
	return &StaticOfficialRate{
		FetchFunc: func(context.Context) (*domain.RateQuote, error) {
			now := time.Now()
			return &domain.RateQuote{Rate: rate, RetrievedAt: &now, Source: "static-official"}, nil
		},
	}
}

func (m *StaticOfficialRate) FetchOfficialRate(ctx context.Context) (*domain.RateQuote, error) {
	return m.FetchFunc(ctx)
}

func (m *StaticOfficialRate) Name() string {
	return "static-official"
}

var (
	_ provider.MarketRate   = (*StaticMarketRate)(nil)
	_ provider.OfficialRate = (*StaticOfficialRate)(nil)
)
