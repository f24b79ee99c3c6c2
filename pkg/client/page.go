package client

// Page is one page of search results as returned by the SEDIA API.
// The payload is opaque passthrough; the only field the client itself
// interprets is totalResults on the first page.
type Page map[string]any

// TotalResults returns the total count of matching records the API
// reports. A missing or malformed field counts as 0.
func (p Page) TotalResults() int {
	switch v := p["totalResults"].(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return int(v)
	case int:
		if v < 0 {
			return 0
		}
		return v
	default:
		return 0
	}
}

// Results returns the result items of the page, or nil if the page
// carries none.
func (p Page) Results() []map[string]any {
	raw, ok := p["results"].([]any)
	if !ok {
		return nil
	}

	items := make([]map[string]any, 0, len(raw))
	for _, r := range raw {
		if item, ok := r.(map[string]any); ok {
			items = append(items, item)
		}
	}
	return items
}
