package config

import (
	"time"
)

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[kambialo]"`
	// Output is "stdout" or "stderr".
	Output string `envconfig:"OUTPUT" default:"stdout"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// MarketRate configures the peer-to-peer marketplace search.
type MarketRate struct {
	URL               string        `envconfig:"URL" default:"https://p2p.binance.com/bapi/c2c/v2/friendly/c2c/adv/search"`
	Asset             string        `envconfig:"ASSET" default:"USDT"`
	Fiat              string        `envconfig:"FIAT" default:"VES"`
	TradeType         string        `envconfig:"TRADE_TYPE" default:"SELL"`
	PayTypes          []string      `envconfig:"PAY_TYPES" default:"PagoMovil"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s"`
	CacheTTL          time.Duration `envconfig:"CACHE_TTL" default:"5m"`
	RequestsPerMinute int           `envconfig:"REQUESTS_PER_MINUTE" default:"30"`
	// Static, when positive, replaces the marketplace with a fixed offer.
	Static float64 `envconfig:"STATIC"`
}

// OfficialRate configures the rate comparison service.
type OfficialRate struct {
	URL               string        `envconfig:"URL" default:"https://api.comparadolar.ve/ves"`
	HTTPTimeout       time.Duration `envconfig:"HTTP_TIMEOUT" default:"5s"`
	CacheTTL          time.Duration `envconfig:"CACHE_TTL" default:"1h"`
	RequestsPerMinute int           `envconfig:"REQUESTS_PER_MINUTE" default:"10"`
	// Static, when positive, replaces the comparison service with a fixed quote.
	Static float64 `envconfig:"STATIC"`
}

type Cache struct {
	RedisURL        string        `envconfig:"REDIS_URL"`
	Prefix          string        `envconfig:"PREFIX" default:"kambialo:rate:"`
	CleanupInterval time.Duration `envconfig:"CLEANUP_INTERVAL" default:"5m"`
}

type History struct {
	MaxEntries         int           `envconfig:"MAX_ENTRIES" default:"100"`
	SessionIdleTimeout time.Duration `envconfig:"SESSION_IDLE_TIMEOUT" default:"30m"`
}

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Server       *Server       `envconfig:"SERVER"`
	Log          *Log          `envconfig:"LOG"`
	RateLimit    *RateLimit    `envconfig:"RATE_LIMIT"`
	MarketRate   *MarketRate   `envconfig:"MARKET_RATE"`
	OfficialRate *OfficialRate `envconfig:"OFFICIAL_RATE"`
	Cache        *Cache        `envconfig:"CACHE"`
	History      *History      `envconfig:"HISTORY"`
}
