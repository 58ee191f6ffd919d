// Package relay fetches vendor pages through a chain of unreliable
// third-party network relays, since the vendors block direct cross-origin
// access from the dashboard.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/Nandheswara/stock-analysis-sub000/internal/common"
	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
)

// maxBodySize caps a relay response body read.
const maxBodySize = 10 * 1024 * 1024 // 10MB

// Fetcher retrieves page HTML by walking the relay chain in order, with one
// direct request as the last resort.
type Fetcher struct {
	relays    []Relay
	client    *http.Client
	timeout   time.Duration
	userAgent string
	logger    arbor.ILogger
}

// NewFetcher creates a relay-chain fetcher from configuration.
func NewFetcher(cfg common.ExtractorConfig, logger arbor.ILogger) *Fetcher {
	return NewFetcherWithRelays(DefaultRelays(cfg.LocalRelayURL), cfg, logger)
}

// NewFetcherWithRelays creates a fetcher with an explicit relay chain.
func NewFetcherWithRelays(relays []Relay, cfg common.ExtractorConfig, logger arbor.ILogger) *Fetcher {
	timeout := cfg.RelayTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Fetcher{
		relays:    relays,
		client:    &http.Client{}, // per-attempt deadlines come from the context
		timeout:   timeout,
		userAgent: cfg.UserAgent,
		logger:    logger,
	}
}

// FetchHTML tries each relay in order and returns the first response that
// passes the HTML sanity check. Every relay failing falls back to one direct
// request; if that also fails the error names all attempted relays.
func (f *Fetcher) FetchHTML(ctx context.Context, targetURL string) (string, error) {
	attempted := make([]string, 0, len(f.relays)+1)

	for _, r := range f.relays {
		attempted = append(attempted, r.Name)

		body, err := f.attempt(ctx, r.Build(targetURL), r.JSONEnvelope)
		if err != nil {
			f.logger.Debug().
				Str("relay", r.Name).
				Str("target", targetURL).
				Err(err).
				Msg("Relay attempt failed, moving to next")
			continue
		}

		f.logger.Debug().
			Str("relay", r.Name).
			Str("target", targetURL).
			Int("bytes", len(body)).
			Msg("Page fetched via relay")
		return body, nil
	}

	// Last resort: one direct cross-origin request.
	attempted = append(attempted, "direct")
	body, err := f.attempt(ctx, targetURL, false)
	if err == nil {
		f.logger.Debug().Str("target", targetURL).Msg("Page fetched directly")
		return body, nil
	}

	return "", fmt.Errorf(
		"all relays failed for %s (attempted: %s): start the local relay (GET /proxy?url=) and check connectivity",
		targetURL, strings.Join(attempted, ", "))
}

// attempt issues one request with the per-attempt timeout and verifies the
// body looks like an HTML document.
func (f *Fetcher) attempt(ctx context.Context, requestURL string, jsonEnvelope bool) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	body := string(data)
	if jsonEnvelope {
		body, err = unwrapEnvelope(data)
		if err != nil {
			return "", err
		}
	}

	if !looksLikeHTML(body) {
		return "", fmt.Errorf("response is not an HTML document")
	}
	return body, nil
}

// unwrapEnvelope extracts the page body from a {"contents": ...} relay
// response.
func unwrapEnvelope(data []byte) (string, error) {
	var envelope struct {
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return "", fmt.Errorf("failed to unwrap relay envelope: %w", err)
	}
	if envelope.Contents == "" {
		return "", fmt.Errorf("relay envelope is empty")
	}
	return envelope.Contents, nil
}

// looksLikeHTML is the cheap content-sanity check: relays regularly return
// error pages, JSON blobs or empty bodies with a 200 status.
func looksLikeHTML(body string) bool {
	lower := strings.ToLower(body)
	return strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html")
}

var _ interfaces.PageFetcher = (*Fetcher)(nil)
