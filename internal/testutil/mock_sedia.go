// Package testutil provides testing utilities for the SEDIA client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
)

// MockSearchAPI is a configurable mock SEDIA search server for testing.
// It serves form-encoded POST page requests with paginated JSON results
// derived from a fixed total result count.
type MockSearchAPI struct {
	server *httptest.Server
	mu     sync.RWMutex

	totalResults int
	pageSize     int

	// pageStatus overrides the HTTP status for individual pages.
	pageStatus map[int]int

	// pageBody overrides the response body for individual pages.
	pageBody map[int]string

	// Tracking
	RequestCount int
	LastForm     url.Values
	PagesSeen    []int
}

// NewMockSearchAPI creates a mock server reporting the given total result
// count and page size.
func NewMockSearchAPI(totalResults, pageSize int) *MockSearchAPI {
	mock := &MockSearchAPI{
		totalResults: totalResults,
		pageSize:     pageSize,
		pageStatus:   make(map[int]int),
		pageBody:     make(map[int]string),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(mock.handle))
	return mock
}

// URL returns the mock server URL.
func (m *MockSearchAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockSearchAPI) Close() {
	m.server.Close()
}

// SetPageStatus makes the given page answer with an HTTP error status.
func (m *MockSearchAPI) SetPageStatus(page, status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageStatus[page] = status
}

// SetPageBody overrides the raw response body for the given page.
func (m *MockSearchAPI) SetPageBody(page int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pageBody[page] = body
}

// GetRequestCount returns the number of requests the server has seen.
func (m *MockSearchAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetLastForm returns the form parameters of the most recent request.
func (m *MockSearchAPI) GetLastForm() url.Values {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LastForm
}

// GetPagesSeen returns the page numbers requested, in order.
func (m *MockSearchAPI) GetPagesSeen() []int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	pages := make([]int, len(m.PagesSeen))
	copy(pages, m.PagesSeen)
	return pages
}

func (m *MockSearchAPI) handle(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, `{"error": "method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, `{"error": "bad form"}`, http.StatusBadRequest)
		return
	}

	page, err := strconv.Atoi(r.PostForm.Get("pageNumber"))
	if err != nil || page < 1 {
		http.Error(w, `{"error": "bad pageNumber"}`, http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.RequestCount++
	m.LastForm = r.PostForm
	m.PagesSeen = append(m.PagesSeen, page)
	status, hasStatus := m.pageStatus[page]
	body, hasBody := m.pageBody[page]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if hasStatus {
		w.WriteHeader(status)
		fmt.Fprintf(w, `{"error": "mock failure for page %d"}`, page)
		return
	}

	if hasBody {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, body)
		return
	}

	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, PageBody(page, m.totalResults, m.pageSize))
}

// PageBody builds a SEDIA-shaped JSON page payload with synthetic result
// items for the given page.
func PageBody(page, totalResults, pageSize int) string {
	start := (page - 1) * pageSize
	count := totalResults - start
	if count > pageSize {
		count = pageSize
	}
	if count < 0 {
		count = 0
	}

	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		n := start + i + 1
		items = append(items, fmt.Sprintf(
			`{"reference": "REF-%04d", "title": "Notice %d", "url": "https://example.eu/notice/%d", "language": "en", "metadata": {"status": ["31094502"]}}`,
			n, n, n))
	}

	return fmt.Sprintf(`{"totalResults": %d, "pageNumber": %d, "pageSize": %d, "results": [%s]}`,
		totalResults, page, pageSize, strings.Join(items, ", "))
}
