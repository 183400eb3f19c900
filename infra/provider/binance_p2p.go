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

// BinanceP2PProvider implements provider.MarketRate against the Binance P2P
// advertisement search.
type BinanceP2PProvider struct {
	url       string
	asset     string
	fiat      string
	tradeType string
	payTypes  []string
	client    *jsonClient
	logger    *slog.Logger
	now       func() time.Time
}

// binanceSearchRequest is the body of the advertisement search.
// publisherType is sent as null to include every kind of advertiser.
type binanceSearchRequest struct {
	Asset         string   `json:"asset"`
	Fiat          string   `json:"fiat"`
	TradeType     string   `json:"tradeType"`
	Page          int      `json:"page"`
	Rows          int      `json:"rows"`
	PayTypes      []string `json:"payTypes"`
	PublisherType *string  `json:"publisherType"`
}

type binanceSearchResponse struct {
	Data []struct {
		Adv struct {
			Price                       number `json:"price"`
			MinSingleTransAmount        number `json:"minSingleTransAmount"`
			DynamicMaxSingleTransAmount number `json:"dynamicMaxSingleTransAmount"`
		} `json:"adv"`
		Advertiser struct {
			NickName string `json:"nickName"`
		} `json:"advertiser"`
	} `json:"data"`
}

// NewBinanceP2PProvider creates a provider from config
func NewBinanceP2PProvider(cfg config.MarketRate, logger *slog.Logger) *BinanceP2PProvider {
	if logger == nil {
		logger = slog.Default()
	}
	payTypes := cfg.PayTypes
	if payTypes == nil {
		payTypes = []string{}
	}
	return &BinanceP2PProvider{
		url:       cfg.URL,
		asset:     cfg.Asset,
		fiat:      cfg.Fiat,
		tradeType: cfg.TradeType,
		payTypes:  payTypes,
		client:    newJSONClient(cfg.HTTPTimeout, cfg.RequestsPerMinute),
		logger:    logger,
		now:       time.Now,
	}
}

// FetchBestOffer returns the first advertisement of the search.
func (p *BinanceP2PProvider) FetchBestOffer(ctx context.Context) (*domain.MarketOffer, error) {
	body := binanceSearchRequest{
		Asset:     p.asset,
		Fiat:      p.fiat,
		TradeType: p.tradeType,
		Page:      1,
		Rows:      1,
		PayTypes:  p.payTypes,
	}
	p.logger.Debug("Fetching P2P offers", "url", p.url, "asset", p.asset, "fiat", p.fiat, "pay_types", p.payTypes)

	var resp binanceSearchResponse
	if err := p.client.do(ctx, http.MethodPost, p.url, body, &resp); err != nil {
		return nil, err
	}

	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("%w: no %s/%s offers", domain.ErrEmptyResult, p.asset, p.fiat)
	}

	best := resp.Data[0]
	if !best.Adv.Price.set {
		return nil, fmt.Errorf("%w: offer has no price", domain.ErrMalformedResponse)
	}
	if best.Adv.Price.value <= 0 {
		return nil, fmt.Errorf("%w: offer price %v is not positive", domain.ErrMalformedResponse, best.Adv.Price.value)
	}

	return &domain.MarketOffer{
		Price:             best.Adv.Price.value,
		CounterpartyLabel: best.Advertiser.NickName,
		MinAmount:         best.Adv.MinSingleTransAmount.value,
		MaxAmount:         best.Adv.DynamicMaxSingleTransAmount.value,
		RetrievedAt:       p.now(),
	}, nil
}

// Name returns the provider's name
func (p *BinanceP2PProvider) Name() string {
	return "binance-p2p"
}

var _ provider.MarketRate = (*BinanceP2PProvider)(nil)
