package rates_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	infra_cache "github.com/amirasaad/kambialo/infra/cache"
	infra_provider "github.com/amirasaad/kambialo/infra/provider"
	"github.com/amirasaad/kambialo/pkg/config"
	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/amirasaad/kambialo/pkg/history"
	"github.com/amirasaad/kambialo/pkg/service/rates"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_EndToEnd(t *testing.T) {
	var marketHits, officialHits atomic.Int32
	market := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		marketHits.Add(1)
		_, _ = io.WriteString(w, `{"data":[{"adv":{"price":"9.00","minSingleTransAmount":"100","dynamicMaxSingleTransAmount":"900"},"advertiser":{"nickName":"p2p-seller"}}]}`)
	}))
	defer market.Close()
	official := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		officialHits.Add(1)
		_, _ = io.WriteString(w, `[{"official":"8.00","timestamp":1717430400000}]`)
	}))
	defer official.Close()

	c := infra_cache.NewMemoryCache(0)
	defer c.Close() //nolint:errcheck

	svc := rates.New(
		infra_provider.NewCachedOfficialRate(
			infra_provider.NewOfficialRateProvider(config.OfficialRate{URL: official.URL, HTTPTimeout: time.Second}, nil),
			c, time.Hour, nil),
		infra_provider.NewCachedMarketRate(
			infra_provider.NewBinanceP2PProvider(config.MarketRate{URL: market.URL, HTTPTimeout: time.Second}, nil),
			c, 5*time.Minute, nil),
		nil,
	)
	tracker := history.NewTracker()

	for range 2 {
		q, err := svc.Quote(context.Background(), rates.QuoteRequest{PriceUSD: 10, History: tracker, Record: true})
		require.NoError(t, err)
		assert.InDelta(t, 80.0, q.Result.TotalLocalCurrency, 1e-9)
		assert.InDelta(t, 8.89, q.Result.AssetUnitsNeeded, 0.005)
		require.NotNil(t, q.Result.RateDifference)
		assert.InDelta(t, 1.0, *q.Result.RateDifference, 1e-9)
		assert.Equal(t, "p2p-seller", q.Offer.CounterpartyLabel)
		require.NotNil(t, q.OfficialQuote.RetrievedAt)
	}

	assert.Equal(t, int32(1), marketHits.Load())
	assert.Equal(t, int32(1), officialHits.Load())
	assert.Len(t, tracker.List(), 2)
}

func TestQuote_EmptyOfferListFallsBackToManual(t *testing.T) {
	market := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":[]}`)
	}))
	defer market.Close()

	c := infra_cache.NewMemoryCache(0)
	defer c.Close() //nolint:errcheck

	svc := rates.New(
		infra_provider.NewStaticOfficialRate(8),
		infra_provider.NewCachedMarketRate(
			infra_provider.NewBinanceP2PProvider(config.MarketRate{URL: market.URL, HTTPTimeout: time.Second}, nil),
			c, 5*time.Minute, nil),
		nil,
	)

	assert.Nil(t, svc.MarketOffer(context.Background()))

	manual := 9.0
	q, err := svc.Quote(context.Background(), rates.QuoteRequest{PriceUSD: 10, ManualMarket: &manual})
	require.NoError(t, err)
	assert.Nil(t, q.Result.RateDifference)
	assert.InDelta(t, 8.89, q.Result.AssetUnitsNeeded, 0.005)
}

func TestRates_NonFiniteMarketPriceNeedsManualEntry(t *testing.T) {
	market := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `{"data":[{"adv":{"price":"NaN"},"advertiser":{"nickName":"x"}}]}`)
	}))
	defer market.Close()
	official := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[{"official":"Infinity"}]`)
	}))
	defer official.Close()

	svc := rates.New(
		infra_provider.NewOfficialRateProvider(config.OfficialRate{URL: official.URL, HTTPTimeout: time.Second}, nil),
		infra_provider.NewBinanceP2PProvider(config.MarketRate{URL: market.URL, HTTPTimeout: time.Second}, nil),
		nil,
	)

	snap := svc.Rates(context.Background())
	assert.True(t, snap.NeedsManualMarket())
	assert.True(t, snap.NeedsManualOfficial())

	_, err := svc.Quote(context.Background(), rates.QuoteRequest{PriceUSD: 10})
	var missing *domain.MissingRatesError
	require.ErrorAs(t, err, &missing)
	assert.True(t, missing.Market)
	assert.True(t, missing.Official)
}
