// Package paginate drives sequential fetching of all pages of a SEDIA
// search query.
//
// The SEDIA search API reports the total result count in the first page
// payload (totalResults); the driver derives the page count from the
// configured page size and walks the remaining pages in ascending order
// with a fixed delay between requests.
//
// Example usage:
//
//	driver := paginate.NewDriver(sediaClient, paginate.DefaultConfig())
//	pages := driver.FetchAllPages(ctx, `"medical"`)
//
// The driver:
//   - Fetches the first page to determine the total page count
//   - Fetches pages 2..N one at a time, throttled by the configured delay
//   - Drops failed pages from the aggregate and keeps going
//   - Aborts only when the very first page yields no data
//
// Fetch failures never surface as error values; the aggregate sequence is
// the whole result, and diagnostics go to the log.
package paginate
