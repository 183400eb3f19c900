package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amirasaad/kambialo/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumber_UnmarshalJSON(t *testing.T) {
	testCases := []struct {
		in      string
		want    float64
		set     bool
		wantErr bool
	}{
		{in: `"36.52"`, want: 36.52, set: true},
		{in: `12`, want: 12, set: true},
		{in: `null`},
		{in: `""`},
		{in: `"x"`, wantErr: true},
		{in: `"NaN"`, wantErr: true},
		{in: `"Infinity"`, wantErr: true},
		{in: `"+Inf"`, wantErr: true},
		{in: `"-inf"`, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			var n number
			err := json.Unmarshal([]byte(tc.in), &n)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.set, n.set)
			assert.InDelta(t, tc.want, n.value, 1e-9)
		})
	}
}

func TestJSONClient_ThrottleCountsAsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := newJSONClient(100*time.Millisecond, 1)
	var out map[string]any
	require.NoError(t, c.do(context.Background(), http.MethodGet, srv.URL, nil, &out))

	err := c.do(context.Background(), http.MethodGet, srv.URL, nil, &out)
	require.ErrorIs(t, err, domain.ErrNetworkFailure)
}
