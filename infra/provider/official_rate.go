package provider

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/amirasaad/kambialo/pkg/provider"
)

// OfficialRateProvider implements provider.OfficialRate against a rate
// comparison service that answers with a JSON array of quotes, e.g.
//
//	[{"official": "36.52", "timestamp": 1717430400000}]
type OfficialRateProvider struct {
	url    string
	client *jsonClient
	logger *slog.Logger
}

type officialRateItem struct {
	Official  number `json:"official"`
	Timestamp number `json:"timestamp"`
}

// NewOfficialRateProvider creates a provider from config
func NewOfficialRateProvider(cfg config.OfficialRate, logger *slog.Logger) *OfficialRateProvider {
	if logger == nil {
		logger = slog.Default()
	}
	return &OfficialRateProvider{
		url:    cfg.URL,
		client: newJSONClient(cfg.HTTPTimeout, cfg.RequestsPerMinute),
		logger: logger,
	}
}

// maxTimestampMillis bounds timestamps to year 9999; larger values are ignored.
const maxTimestampMillis = 253402300799999

// FetchOfficialRate reads the first quote of the response.
func (p *OfficialRateProvider) FetchOfficialRate(ctx context.Context) (*domain.RateQuote, error) {
	p.logger.Debug("Fetching official rate", "url", p.url)

	var items []officialRateItem
	if err := p.client.do(ctx, http.MethodGet, p.url, nil, &items); err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: no official quotes", domain.ErrEmptyResult)
	}

	first := items[0]
	if !first.Official.set {
		return nil, fmt.Errorf("%w: missing official field", domain.ErrMalformedResponse)
	}
	if first.Official.value <= 0 {
		return nil, fmt.Errorf("%w: official rate %v is not positive", domain.ErrMalformedResponse, first.Official.value)
	}

	quote := &domain.RateQuote{
		Rate:   first.Official.value,
		Source: p.Name(),
	}
	if first.Timestamp.set && first.Timestamp.value > 0 && first.Timestamp.value <= maxTimestampMillis {
		at := time.UnixMilli(int64(first.Timestamp.value)).UTC()
		quote.RetrievedAt = &at
	}
	return quote, nil
}

// Name returns the provider's name
func (p *OfficialRateProvider) Name() string {
	return "official-rate"
}

var _ provider.OfficialRate = (*OfficialRateProvider)(nil)
