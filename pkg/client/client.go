// Package client provides the core SEDIA search HTTP client with
// request encoding, error classification, and metrics.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/schema"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tendertrack/sedia-client/pkg/config"
)

// Prometheus metrics for SEDIA client operations.
var (
	sediaRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sedia_requests_total",
		Help: "Total SEDIA search requests by status",
	}, []string{"status"})

	sediaRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sedia_request_duration_seconds",
		Help:    "SEDIA search request duration in seconds",
		Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
	})

	sediaErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sedia_errors_total",
		Help: "Total SEDIA fetch errors by class",
	}, []string{"class"})
)

// pageQuery is the form-encoded parameter set of one page request.
type pageQuery struct {
	APIKey     string `schema:"apiKey"`
	Text       string `schema:"text"`
	PageSize   int    `schema:"pageSize"`
	PageNumber int    `schema:"pageNumber"`
}

// Client is the SEDIA search API client.
type Client struct {
	httpClient *http.Client
	encoder    *schema.Encoder
	config     *config.Config
	logger     zerolog.Logger
}

// New creates a new SEDIA client from an explicit configuration.
func New(cfg *config.Config) (*Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	logger := log.With().Str("component", "sedia-client").Logger()

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		encoder: schema.NewEncoder(),
		config:  cfg,
		logger:  logger,
	}, nil
}

// FetchPage performs one synchronous POST for a single page of results.
// A pageNumber below 1 is rejected. An empty searchText falls back to the
// configured default query. All failure paths return a typed *APIError;
// nothing is retried at this layer.
func (c *Client) FetchPage(ctx context.Context, pageNumber int, searchText string) (Page, error) {
	if pageNumber < 1 {
		return nil, fmt.Errorf("page number must be >= 1 (got %d)", pageNumber)
	}
	if searchText == "" {
		searchText = c.config.SearchText
	}

	startTime := time.Now()
	defer func() {
		sediaRequestDuration.Observe(time.Since(startTime).Seconds())
	}()

	form := url.Values{}
	query := pageQuery{
		APIKey:     c.config.APIKey,
		Text:       searchText,
		PageSize:   c.config.PageSize,
		PageNumber: pageNumber,
	}
	if err := c.encoder.Encode(query, form); err != nil {
		return nil, fmt.Errorf("encode page query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for key, value := range c.config.RequestHeaders {
		req.Header.Set(key, value)
	}

	c.logger.Debug().
		Int("page", pageNumber).
		Str("text", searchText).
		Msg("Executing SEDIA request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Int("page", pageNumber).Msg("HTTP request failed")
		sediaErrorsTotal.WithLabelValues(string(ErrorClassNetwork)).Inc()
		sediaRequestsTotal.WithLabelValues("network_error").Inc()
		return nil, &APIError{
			PageNumber: pageNumber,
			ErrorClass: ErrorClassNetwork,
			Err:        err,
		}
	}
	defer resp.Body.Close()

	sediaRequestsTotal.WithLabelValues(fmt.Sprintf("%d", resp.StatusCode)).Inc()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		errClass := classifyStatus(resp.StatusCode)
		sediaErrorsTotal.WithLabelValues(string(errClass)).Inc()

		c.logger.Warn().
			Int("page", pageNumber).
			Int("status", resp.StatusCode).
			Str("error_class", string(errClass)).
			Str("body", string(body)).
			Msg("SEDIA request error")

		return nil, &APIError{
			PageNumber: pageNumber,
			StatusCode: resp.StatusCode,
			ErrorClass: errClass,
			Body:       string(body),
		}
	}

	var page Page
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		c.logger.Error().Err(err).Int("page", pageNumber).Msg("Failed to decode response body")
		sediaErrorsTotal.WithLabelValues(string(ErrorClassServer)).Inc()
		return nil, &APIError{
			PageNumber: pageNumber,
			StatusCode: resp.StatusCode,
			ErrorClass: ErrorClassServer,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}

	return page, nil
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}
