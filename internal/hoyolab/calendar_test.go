package hoyolab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
}

func TestFetchAwardsRejectsNonZeroRetcode(t *testing.T) {
	srv := serve(t, `{"retcode":-100,"message":"Please log in","data":null}`)
	defer srv.Close()

	c := newTestClient()
	_, err := c.FetchAwards(context.Background(), "cookie", linksFor(srv.URL))

	var dataErr *APIDataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, -100, dataErr.Retcode)
	assert.Equal(t, "Please log in", dataErr.Message)
}

func TestFetchAwardsRejectsMissingAwards(t *testing.T) {
	srv := serve(t, `{"retcode":0,"message":"OK","data":{"month":9}}`)
	defer srv.Close()

	c := newTestClient()
	_, err := c.FetchAwards(context.Background(), "cookie", linksFor(srv.URL))

	var dataErr *APIDataError
	require.True(t, errors.As(err, &dataErr))
}

func TestFetchDayCount(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected int
		wantErr  bool
	}{
		{
			name:     "counter present",
			body:     `{"retcode":0,"message":"OK","data":{"total_sign_day":7,"is_sign":true}}`,
			expected: 7,
		},
		{
			name:     "counter missing but is_sign present infers zero",
			body:     `{"retcode":0,"message":"OK","data":{"is_sign":false}}`,
			expected: 0,
		},
		{
			name:    "counter and is_sign both missing",
			body:    `{"retcode":0,"message":"OK","data":{}}`,
			wantErr: true,
		},
		{
			name:    "null data",
			body:    `{"retcode":0,"message":"OK","data":null}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.body)
			defer srv.Close()

			c := newTestClient()
			got, err := c.FetchDayCount(context.Background(), "cookie", linksFor(srv.URL))

			if tt.wantErr {
				var dataErr *APIDataError
				require.True(t, errors.As(err, &dataErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFetchRefreshTime(t *testing.T) {
	tests := []struct {
		name      string
		shortName string
		body      string
		expected  string
		wantErr   bool
	}{
		{
			name:      "refresh_time present",
			shortName: "zzz",
			body:      `{"retcode":0,"message":"OK","data":{"refresh_time":"1756710000"}}`,
			expected:  "1756710000",
		},
		{
			name:      "gi falls back to resign_time",
			shortName: "gi",
			body:      `{"retcode":0,"message":"OK","data":{"resign_time":"1756710000"}}`,
			expected:  "1756710000",
		},
		{
			name:      "resign_time alternate only honored for gi",
			shortName: "hkrpg",
			body:      `{"retcode":0,"message":"OK","data":{"resign_time":"1756710000"}}`,
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := serve(t, tt.body)
			defer srv.Close()

			c := newTestClient()
			links := linksFor(srv.URL)
			links.ShortName = tt.shortName
			got, err := c.FetchRefreshTime(context.Background(), "cookie", links)

			if tt.wantErr {
				var dataErr *APIDataError
				require.True(t, errors.As(err, &dataErr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestCheckSignedInRetriesTransientRetcode(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts <= 2 {
			w.Write([]byte(`{"retcode":-500001,"message":"system busy","data":null}`))
			return
		}
		w.Write([]byte(`{"retcode":0,"message":"OK","data":{"total_sign_day":3,"is_sign":true}}`))
	}))
	defer srv.Close()

	c := newTestClient()
	signed, err := c.CheckSignedIn(context.Background(), "cookie", linksFor(srv.URL))

	require.NoError(t, err)
	assert.True(t, signed)
	assert.Equal(t, 3, attempts)
}

func TestCheckSignedInGivesUpAfterTransientRetries(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{"retcode":-500001,"message":"system busy","data":null}`))
	}))
	defer srv.Close()

	c := newTestClient()
	_, err := c.CheckSignedIn(context.Background(), "cookie", linksFor(srv.URL))

	var dataErr *APIDataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, transientRetcode, dataErr.Retcode)
	assert.Equal(t, 3, attempts, "one call plus two domain-level retries")
}

func TestCheckSignedInHardErrorNotRetried(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`{"retcode":-100,"message":"Please log in","data":null}`))
	}))
	defer srv.Close()

	c := newTestClient()
	_, err := c.CheckSignedIn(context.Background(), "cookie", linksFor(srv.URL))

	var dataErr *APIDataError
	require.True(t, errors.As(err, &dataErr))
	assert.Equal(t, 1, attempts)
}

func TestCheckSignedInNullDataMeansNotSigned(t *testing.T) {
	srv := serve(t, `{"retcode":0,"message":"OK","data":null}`)
	defer srv.Close()

	c := newTestClient()
	signed, err := c.CheckSignedIn(context.Background(), "cookie", linksFor(srv.URL))

	require.NoError(t, err)
	assert.False(t, signed)
}

func TestCheckSignedInInfersFromZeroDayCount(t *testing.T) {
	srv := serve(t, `{"retcode":0,"message":"OK","data":{"total_sign_day":0}}`)
	defer srv.Close()

	c := newTestClient()
	signed, err := c.CheckSignedIn(context.Background(), "cookie", linksFor(srv.URL))

	require.NoError(t, err)
	assert.False(t, signed)
}

func TestCheckSignedInFallsBackToDayCounterURL(t *testing.T) {
	srv := serve(t, `{"retcode":0,"message":"OK","data":{"total_sign_day":1,"is_sign":true}}`)
	defer srv.Close()

	c := newTestClient()
	links := linksFor(srv.URL)
	links.SigninCheckURL = ""
	signed, err := c.CheckSignedIn(context.Background(), "cookie", links)

	require.NoError(t, err)
	assert.True(t, signed)
}
