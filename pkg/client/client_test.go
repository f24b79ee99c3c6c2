package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tendertrack/sedia-client/internal/testutil"
	"github.com/tendertrack/sedia-client/pkg/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:        baseURL,
		APIKey:         "SEDIA",
		SearchText:     `"guam"`,
		PageSize:       100,
		Delay:          time.Second,
		HTTPTimeout:    5 * time.Second,
		RequestHeaders: config.DefaultRequestHeaders(),
	}
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name        string
		config      *config.Config
		expectError bool
	}{
		{
			name:   "valid config",
			config: testConfig("https://example.eu/search"),
		},
		{
			name:        "nil config",
			config:      nil,
			expectError: true,
		},
		{
			name: "missing base URL",
			config: &config.Config{
				APIKey:   "SEDIA",
				PageSize: 100,
			},
			expectError: true,
		},
		{
			name: "missing API key",
			config: &config.Config{
				BaseURL:  "https://example.eu/search",
				PageSize: 100,
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.config)

			if tt.expectError {
				if err == nil {
					t.Error("Expected error but got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if c == nil {
				t.Error("Client is nil")
			}
		})
	}
}

func TestFetchPage_Success(t *testing.T) {
	mock := testutil.NewMockSearchAPI(250, 100)
	defer mock.Close()

	c, err := New(testConfig(mock.URL()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	page, err := c.FetchPage(context.Background(), 1, `"medical"`)
	if err != nil {
		t.Fatalf("FetchPage() failed: %v", err)
	}

	if got := page.TotalResults(); got != 250 {
		t.Errorf("TotalResults() = %d, want 250", got)
	}
	if got := len(page.Results()); got != 100 {
		t.Errorf("len(Results()) = %d, want 100", got)
	}
}

func TestFetchPage_FormParameters(t *testing.T) {
	mock := testutil.NewMockSearchAPI(10, 100)
	defer mock.Close()

	c, err := New(testConfig(mock.URL()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := c.FetchPage(context.Background(), 3, `"medical"`); err != nil {
		t.Fatalf("FetchPage() failed: %v", err)
	}

	form := mock.GetLastForm()
	if got := form.Get("apiKey"); got != "SEDIA" {
		t.Errorf("apiKey = %q, want SEDIA", got)
	}
	if got := form.Get("text"); got != `"medical"` {
		t.Errorf("text = %q, want %q", got, `"medical"`)
	}
	if got := form.Get("pageSize"); got != "100" {
		t.Errorf("pageSize = %q, want 100", got)
	}
	if got := form.Get("pageNumber"); got != "3" {
		t.Errorf("pageNumber = %q, want 3", got)
	}
}

func TestFetchPage_DefaultSearchText(t *testing.T) {
	mock := testutil.NewMockSearchAPI(10, 100)
	defer mock.Close()

	c, err := New(testConfig(mock.URL()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := c.FetchPage(context.Background(), 1, ""); err != nil {
		t.Fatalf("FetchPage() failed: %v", err)
	}

	if got := mock.GetLastForm().Get("text"); got != `"guam"` {
		t.Errorf("text = %q, want configured default %q", got, `"guam"`)
	}
}

func TestFetchPage_InvalidPageNumber(t *testing.T) {
	c, err := New(testConfig("https://example.eu/search"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := c.FetchPage(context.Background(), 0, ""); err == nil {
		t.Error("Expected error for page number 0")
	}
}

func TestFetchPage_HTTPErrorClassification(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		expected   ErrorClass
	}{
		{"not found", 404, ErrorClassClient},
		{"server error", 500, ErrorClassServer},
		{"rate limited", 429, ErrorClassRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := testutil.NewMockSearchAPI(10, 100)
			defer mock.Close()
			mock.SetPageStatus(1, tt.statusCode)

			c, err := New(testConfig(mock.URL()))
			if err != nil {
				t.Fatalf("New() failed: %v", err)
			}

			_, err = c.FetchPage(context.Background(), 1, "")
			if err == nil {
				t.Fatal("Expected error, got nil")
			}

			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("Error type = %T, want *APIError", err)
			}
			if apiErr.StatusCode != tt.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tt.statusCode)
			}
			if apiErr.ErrorClass != tt.expected {
				t.Errorf("ErrorClass = %q, want %q", apiErr.ErrorClass, tt.expected)
			}
			if apiErr.PageNumber != 1 {
				t.Errorf("PageNumber = %d, want 1", apiErr.PageNumber)
			}
		})
	}
}

func TestFetchPage_NetworkError(t *testing.T) {
	mock := testutil.NewMockSearchAPI(10, 100)
	baseURL := mock.URL()
	mock.Close() // connection refused from here on

	c, err := New(testConfig(baseURL))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	_, err = c.FetchPage(context.Background(), 2, "")
	if err == nil {
		t.Fatal("Expected error, got nil")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Error type = %T, want *APIError", err)
	}
	if apiErr.ErrorClass != ErrorClassNetwork {
		t.Errorf("ErrorClass = %q, want %q", apiErr.ErrorClass, ErrorClassNetwork)
	}
	if apiErr.PageNumber != 2 {
		t.Errorf("PageNumber = %d, want 2", apiErr.PageNumber)
	}
}

func TestFetchPage_MalformedBody(t *testing.T) {
	mock := testutil.NewMockSearchAPI(10, 100)
	defer mock.Close()
	mock.SetPageBody(1, `{"totalResults": `)

	c, err := New(testConfig(mock.URL()))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	if _, err := c.FetchPage(context.Background(), 1, ""); err == nil {
		t.Error("Expected decode error, got nil")
	}
}
