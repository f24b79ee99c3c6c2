package paginate

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"

	"github.com/tendertrack/sedia-client/pkg/client"
)

// Prometheus metrics for pagination runs.
var (
	sediaPagesFetchedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sedia_pages_fetched_total",
		Help: "Total pages successfully fetched and aggregated",
	})

	sediaPagesDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sedia_pages_dropped_total",
		Help: "Total pages dropped from the aggregate after a fetch failure",
	})

	sediaFetchRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sedia_fetch_runs_total",
		Help: "Total pagination runs by result (complete, partial, empty)",
	}, []string{"result"})
)

// Config holds pagination driver configuration.
type Config struct {
	// PageSize is the number of results the API returns per page.
	// Must match the pageSize sent by the page fetcher.
	PageSize int

	// Delay is the fixed wait between page requests to respect the
	// API's implicit rate limits.
	Delay time.Duration
}

// DefaultConfig returns safe default configuration for the SEDIA API.
func DefaultConfig() Config {
	return Config{
		PageSize: 100,
		Delay:    1 * time.Second,
	}
}

// PageFetcher is the interface the SEDIA client implements for
// single-page fetching.
type PageFetcher interface {
	// FetchPage fetches one page; an empty searchText selects the
	// configured default query.
	FetchPage(ctx context.Context, pageNumber int, searchText string) (client.Page, error)
}

// Driver fetches all pages of a search sequentially.
type Driver struct {
	fetcher PageFetcher
	config  Config
}

// NewDriver creates a new pagination driver.
func NewDriver(fetcher PageFetcher, config Config) *Driver {
	if config.PageSize <= 0 {
		config.PageSize = 100
	}
	if config.Delay <= 0 {
		config.Delay = 1 * time.Second
	}

	return &Driver{
		fetcher: fetcher,
		config:  config,
	}
}

// TotalPages computes how many pages cover totalResults records at the
// given page size.
func TotalPages(totalResults, pageSize int) int {
	if pageSize <= 0 || totalResults <= 0 {
		return 0
	}
	pages := totalResults / pageSize
	if totalResults%pageSize != 0 {
		pages++
	}
	return pages
}

// FetchAllPages fetches every page of the search in ascending order and
// returns the aggregated payloads, one element per successfully fetched
// page. The return value carries no error signal: a failed first page
// yields an empty sequence, a failed later page is dropped from the
// aggregate, and both are reported through the log only. Cancelling the
// context stops the walk early with whatever was accumulated so far.
func (d *Driver) FetchAllPages(ctx context.Context, searchText string) []client.Page {
	start := time.Now()

	// Fetch the first page to learn how many results exist.
	firstPage, err := d.fetcher.FetchPage(ctx, 1, searchText)
	if err != nil || len(firstPage) == 0 {
		log.Error().Err(err).Msg("No data returned from first page")
		sediaFetchRunsTotal.WithLabelValues("empty").Inc()
		return nil
	}

	totalResults := firstPage.TotalResults()
	totalPages := TotalPages(totalResults, d.config.PageSize)

	log.Info().
		Int("total_results", totalResults).
		Int("total_pages", totalPages).
		Msg("Starting page fetch")

	pages := []client.Page{firstPage}
	sediaPagesFetchedTotal.Inc()
	dropped := 0

	for pageNumber := 2; pageNumber <= totalPages; pageNumber++ {
		log.Debug().Int("page", pageNumber).Msg("Fetching page")

		page, err := d.fetcher.FetchPage(ctx, pageNumber, searchText)
		switch {
		case err != nil:
			log.Warn().
				Err(err).
				Int("page", pageNumber).
				Msg("Page fetch failed, dropping page")
			sediaPagesDroppedTotal.Inc()
			dropped++
		case len(page) > 0:
			pages = append(pages, page)
			sediaPagesFetchedTotal.Inc()
		}

		// Wait between requests to avoid hammering the API. The wait
		// also runs after the final page; total wall-clock time is
		// observable behavior callers may depend on.
		select {
		case <-ctx.Done():
			log.Warn().
				Int("page", pageNumber).
				Int("fetched", len(pages)).
				Msg("Fetch cancelled, returning accumulated pages")
			sediaFetchRunsTotal.WithLabelValues("partial").Inc()
			return pages
		case <-time.After(d.config.Delay):
		}
	}

	result := "complete"
	if dropped > 0 {
		result = "partial"
	}
	sediaFetchRunsTotal.WithLabelValues(result).Inc()

	log.Info().
		Int("pages", len(pages)).
		Int("total", totalPages).
		Int("dropped", dropped).
		Dur("duration", time.Since(start)).
		Msg("Fetch complete")

	return pages
}
