// Package calculator derives the local currency total and the stable asset
// units needed for a USD price.
//
// Invariants:
//   - TotalLocalCurrency = PriceUSD * OfficialRate
//   - AssetUnitsNeeded = TotalLocalCurrency / MarketRate
//   - A zero market rate is an error, never Inf or NaN.
package calculator

import (
	"math"

	"github.com/amirasaad/kambialo/pkg/domain"
)

// Compute treats both rates as fetched, so RateDifference is always set.
func Compute(priceUSD, officialRate, marketRate float64) (*domain.CalculationResult, error) {
	return ComputeRates(
		domain.CalculationInput{PriceUSD: priceUSD},
		domain.FetchedRate(officialRate),
		domain.FetchedRate(marketRate),
	)
}

// ComputeRates sets RateDifference only when the market rate was fetched
// from a live offer.
func ComputeRates(
	in domain.CalculationInput,
	official, market domain.Rate,
) (*domain.CalculationResult, error) {
	if math.IsNaN(in.PriceUSD) || math.IsInf(in.PriceUSD, 0) {
		return nil, domain.ErrNegativePrice
	}
	if in.PriceUSD < 0 {
		return nil, domain.ErrNegativePrice
	}
	if !validRate(official.Value) || !validRate(market.Value) {
		return nil, domain.ErrInvalidRate
	}
	if market.Value == 0 {
		return nil, domain.ErrDivisionByZero
	}

	total := in.PriceUSD * official.Value
	units := total / market.Value
	if math.IsInf(total, 0) || math.IsInf(units, 0) {
		return nil, domain.ErrInvalidRate
	}

	res := &domain.CalculationResult{
		OfficialRate:       official.Value,
		MarketRate:         market.Value,
		TotalLocalCurrency: total,
		AssetUnitsNeeded:   units,
	}
	if market.Origin == domain.RateFetched {
		diff := market.Value - official.Value
		res.RateDifference = &diff
	}
	return res, nil
}

func validRate(v float64) bool {
	return v >= 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}
