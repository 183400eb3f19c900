package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amirasaad/kambialo/pkg/domain"
	"golang.org/x/time/rate"
)

const maxErrorBody = 512

// jsonClient performs JSON requests and classifies failures into the domain
// error taxonomy.
type jsonClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
}

// newJSONClient builds a client with the given timeout. A requestsPerMinute
// of zero or less disables throttling.
func newJSONClient(timeout time.Duration, requestsPerMinute int) *jsonClient {
	c := &jsonClient{
		httpClient: &http.Client{Timeout: timeout},
		userAgent:  "kambialo/1.0",
	}
	if requestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}
	return c
}

// do sends the request and decodes a 2xx JSON body into out.
func (c *jsonClient) do(ctx context.Context, method, url string, body, out any) error {
	if timeout := c.httpClient.Timeout; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: throttled: %v", domain.ErrNetworkFailure, err)
		}
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkFailure, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("%w: API returned status %d: %s",
			domain.ErrNetworkFailure, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", domain.ErrMalformedResponse, err)
	}
	return nil
}

// number accepts a JSON number or a numeric string. The zero value with
// set == false means the field was absent or null.
type number struct {
	value float64
	set   bool
}

func (n *number) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		*n = number{}
		return nil
	}
	s = strings.Trim(s, `"`)
	if s == "" {
		*n = number{}
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid number %q: %w", s, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("invalid number %q: not finite", s)
	}
	*n = number{value: v, set: true}
	return nil
}
