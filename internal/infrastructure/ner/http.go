package ner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"net/http"
	"strings"
	"time"

	"NewsScanner/internal/domain"
	"NewsScanner/internal/ports"
)

// HTTPRecognizer talks to an external NER service, typically a small wrapper
// around a pretrained pipeline. The service exposes:
//
//	GET  /health            -> 200 once the model is loaded
//	POST /ner {"text": ...} -> {"entities": [{"text": ..., "label": ...}, ...]}
type HTTPRecognizer struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

var _ ports.EntityRecognizer = (*HTTPRecognizer)(nil)

// NewHTTPRecognizer creates a reusable HTTP client; a nil client gets a 15s timeout.
func NewHTTPRecognizer(endpoint, apiKey string, client *http.Client) *HTTPRecognizer {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &HTTPRecognizer{
		endpoint: strings.TrimSuffix(endpoint, "/"),
		apiKey:   apiKey,
		http:     client,
	}
}

type nerRequest struct {
	Text string `json:"text"`
}

type nerResponse struct {
	Entities []struct {
		Text  string `json:"text"`
		Label string `json:"label"`
	} `json:"entities"`
}

// Init checks that the service is reachable and has its model loaded.
func (c *HTTPRecognizer) Init(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"/health", nil)
	if err != nil {
		return &domain.RecognizerError{Op: "init", Err: fmt.Errorf("new request: %w", err)}
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return &domain.RecognizerError{Op: "init", Err: fmt.Errorf("do request: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &domain.RecognizerError{Op: "init", Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}
	return nil
}

// Close releases idle connections.
func (c *HTTPRecognizer) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// Recognize sends one request when the sequence is first ranged over and
// yields the service's entities in response order.
func (c *HTTPRecognizer) Recognize(ctx context.Context, text string) iter.Seq2[domain.Entity, error] {
	return func(yield func(domain.Entity, error) bool) {
		var resp nerResponse
		if err := c.post(ctx, "/ner", nerRequest{Text: text}, &resp); err != nil {
			yield(domain.Entity{}, &domain.RecognizerError{Op: "recognize", Err: err})
			return
		}
		for _, e := range resp.Entities {
			if !yield(domain.Entity{Text: e.Text, Label: e.Label}, nil) {
				return
			}
		}
	}
}

func (c *HTTPRecognizer) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

func (c *HTTPRecognizer) post(ctx context.Context, path string, payload any, v any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("unexpected status %s: %s", resp.Status, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
