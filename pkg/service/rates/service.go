// Package rates acquires the official and market rates and turns a USD price
// into a quotation. Fetch failures never reach the caller as errors: they are
// logged and the rate is reported as missing so the presentation layer can ask
// for a manual value.
package rates

import (
	"context"
	"log/slog"
	"math"

	"github.com/amirasaad/kambialo/pkg/calculator"
	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/amirasaad/kambialo/pkg/history"
	"github.com/amirasaad/kambialo/pkg/provider"
	"golang.org/x/sync/errgroup"
)

// Service combines the two rate providers with the calculator.
type Service struct {
	official provider.OfficialRate
	market   provider.MarketRate
	logger   *slog.Logger
}

// New creates a Service. Providers are usually wrapped in a cache.
func New(official provider.OfficialRate, market provider.MarketRate, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{official: official, market: market, logger: logger}
}

// Snapshot is the outcome of fetching both rates. A nil field means the rate
// could not be obtained and must be entered manually.
type Snapshot struct {
	Official *domain.RateQuote   `json:"official"`
	Market   *domain.MarketOffer `json:"market"`
}

// NeedsManualOfficial reports whether the official rate is missing.
func (s Snapshot) NeedsManualOfficial() bool { return s.Official == nil }

// NeedsManualMarket reports whether the market rate is missing.
func (s Snapshot) NeedsManualMarket() bool { return s.Market == nil }

// OfficialRate returns the latest official quote or nil on any failure.
func (s *Service) OfficialRate(ctx context.Context) *domain.RateQuote {
	quote, err := s.official.FetchOfficialRate(ctx)
	if err != nil {
		s.logger.Warn("Official rate unavailable, manual entry required",
			"provider", s.official.Name(),
			"error", err,
		)
		return nil
	}
	return quote
}

// MarketOffer returns the best market offer or nil on any failure.
func (s *Service) MarketOffer(ctx context.Context) *domain.MarketOffer {
	offer, err := s.market.FetchBestOffer(ctx)
	if err != nil {
		s.logger.Warn("Market rate unavailable, manual entry required",
			"provider", s.market.Name(),
			"error", err,
		)
		return nil
	}
	return offer
}

// Rates fetches both rates concurrently.
func (s *Service) Rates(ctx context.Context) Snapshot {
	return s.fetch(ctx, true, true)
}

func (s *Service) fetch(ctx context.Context, wantOfficial, wantMarket bool) Snapshot {
	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	if wantOfficial {
		g.Go(func() error {
			snap.Official = s.OfficialRate(gctx)
			return nil
		})
	}
	if wantMarket {
		g.Go(func() error {
			snap.Market = s.MarketOffer(gctx)
			return nil
		})
	}
	_ = g.Wait()
	return snap
}

// QuoteRequest is one calculation request. Manual rates, when set, take
// precedence and the corresponding fetch is skipped.
type QuoteRequest struct {
	PriceUSD       float64
	ManualOfficial *float64
	ManualMarket   *float64
	// History receives an entry when Record is set.
	History *history.Tracker
	Record  bool
}

// Quotation is the result of a QuoteRequest.
type Quotation struct {
	Input         domain.CalculationInput   `json:"input"`
	Official      domain.Rate               `json:"official"`
	Market        domain.Rate               `json:"market"`
	OfficialQuote *domain.RateQuote         `json:"official_quote,omitempty"`
	Offer         *domain.MarketOffer       `json:"offer,omitempty"`
	Result        *domain.CalculationResult `json:"result"`
	Entry         *domain.HistoryEntry      `json:"history_entry,omitempty"`
}

// Quote resolves both rates, computes the result and optionally records it.
// It returns *domain.MissingRatesError when a rate is neither fetched nor
// given manually.
func (s *Service) Quote(ctx context.Context, req QuoteRequest) (*Quotation, error) {
	if req.PriceUSD < 0 || math.IsNaN(req.PriceUSD) || math.IsInf(req.PriceUSD, 0) {
		return nil, domain.ErrNegativePrice
	}
	for _, manual := range []*float64{req.ManualOfficial, req.ManualMarket} {
		if manual != nil && (*manual < 0 || math.IsNaN(*manual) || math.IsInf(*manual, 0)) {
			return nil, domain.ErrInvalidRate
		}
	}

	snap := s.fetch(ctx, req.ManualOfficial == nil, req.ManualMarket == nil)
	q := &Quotation{Input: domain.CalculationInput{PriceUSD: req.PriceUSD}}

	missing := &domain.MissingRatesError{}
	switch {
	case req.ManualOfficial != nil:
		q.Official = domain.ManualRate(*req.ManualOfficial)
	case snap.Official != nil:
		q.Official = domain.FetchedRate(snap.Official.Rate)
		q.OfficialQuote = snap.Official
	default:
		missing.Official = true
	}
	switch {
	case req.ManualMarket != nil:
		q.Market = domain.ManualRate(*req.ManualMarket)
	case snap.Market != nil:
		q.Market = domain.FetchedRate(snap.Market.Price)
		q.Offer = snap.Market
	default:
		missing.Market = true
	}
	if missing.Official || missing.Market {
		return nil, missing
	}

	res, err := calculator.ComputeRates(q.Input, q.Official, q.Market)
	if err != nil {
		return nil, err
	}
	q.Result = res

	if req.Record && req.History != nil {
		entry := domain.NewHistoryEntry(q.Input, res)
		if q.Offer != nil {
			entry.Counterparty = q.Offer.CounterpartyLabel
		}
		recorded := req.History.Record(entry)
		q.Entry = &recorded
	}

	s.logger.Debug("Quotation computed",
		"price_usd", req.PriceUSD,
		"official_rate", q.Official.Value,
		"official_origin", q.Official.Origin,
		"market_rate", q.Market.Value,
		"market_origin", q.Market.Origin,
		"total_local", res.TotalLocalCurrency,
	)
	return q, nil
}
