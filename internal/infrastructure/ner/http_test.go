package ner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"NewsScanner/internal/domain"
)

func newNERServer(t *testing.T, healthStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(healthStatus)
	})
	mux.HandleFunc("/ner", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer secret" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		var req nerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Text == "crash" {
			http.Error(w, "model exploded", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"entities":[{"text":"Google","label":"ORG"},{"text":"Paris","label":"GPE"}]}`))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestHTTPRecognizer(t *testing.T) {
	t.Parallel()

	server := newNERServer(t, http.StatusOK)
	r := NewHTTPRecognizer(server.URL+"/", "secret", server.Client())
	require.NoError(t, r.Init(context.Background()))
	defer r.Close()

	var got []domain.Entity
	for e, err := range r.Recognize(context.Background(), "Google opens in Paris") {
		require.NoError(t, err)
		got = append(got, e)
	}
	assert.Equal(t, []domain.Entity{{Text: "Google", Label: "ORG"}, {Text: "Paris", Label: "GPE"}}, got)
}

func TestHTTPRecognizerInitFailure(t *testing.T) {
	t.Parallel()

	server := newNERServer(t, http.StatusServiceUnavailable)
	err := NewHTTPRecognizer(server.URL, "secret", server.Client()).Init(context.Background())
	require.ErrorIs(t, err, domain.ErrRecognizer)
}

func TestHTTPRecognizerServiceError(t *testing.T) {
	t.Parallel()

	server := newNERServer(t, http.StatusOK)
	r := NewHTTPRecognizer(server.URL, "secret", server.Client())

	var errs []error
	for _, err := range r.Recognize(context.Background(), "crash") {
		errs = append(errs, err)
	}
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], domain.ErrRecognizer)
	assert.Contains(t, errs[0].Error(), "model exploded")
}
