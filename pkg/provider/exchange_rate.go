package provider

import (
	"context"

	"github.com/amirasaad/kambialo/pkg/domain"
)

// MarketRate fetches the best peer-to-peer offer for the stable asset.
type MarketRate interface {
	// FetchBestOffer returns the best offer, or an error wrapping one of
	// domain.ErrNetworkFailure, domain.ErrMalformedResponse or domain.ErrEmptyResult.
	FetchBestOffer(ctx context.Context) (*domain.MarketOffer, error)

	// Name returns the provider's name for logging and identification.
	Name() string
}

// OfficialRate fetches the latest official exchange rate.
type OfficialRate interface {
	// FetchOfficialRate returns the latest quote, or an error wrapping one of
	// domain.ErrNetworkFailure, domain.ErrMalformedResponse or domain.ErrEmptyResult.
	FetchOfficialRate(ctx context.Context) (*domain.RateQuote, error)

	// Name returns the provider's name for logging and identification.
	Name() string
}
