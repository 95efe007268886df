package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsScanner/internal/domain"
)

func TestFetchReturnsBody(t *testing.T) {
	t.Parallel()

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body><article><h3>Hi</h3></article></body></html>"))
	}))
	defer server.Close()

	f := NewHTTPFetcher(server.Client(), "test-agent", 0)
	raw, err := f.Fetch(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Contains(t, string(raw), "<h3>Hi</h3>")
	assert.Equal(t, "test-agent", gotUA)
}

func TestFetchTranscodesLatin1(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>Caf\xe9</p>"))
	}))
	defer server.Close()

	raw, err := NewHTTPFetcher(server.Client(), "", 0).Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>Café</p>", string(raw))
}

func TestFetchNonOKStatus(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewHTTPFetcher(server.Client(), "", 0).Fetch(context.Background(), server.URL)
	require.ErrorIs(t, err, domain.ErrFetch)

	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, http.StatusServiceUnavailable, fe.Status)
}

func TestFetchTransportFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewHTTPFetcher(nil, "", time.Second).Fetch(context.Background(), url)
	require.ErrorIs(t, err, domain.ErrFetch)
}
