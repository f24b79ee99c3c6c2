package client

// StatusMapping translates the SEDIA metadata status code to a
// human-readable status.
var StatusMapping = map[string]string{
	"31094503": "Closed",
	"31094501": "Forthcoming",
	"31094502": "Open for Submission",
}

// StatusUnknown is used when the metadata status code is missing or
// not part of StatusMapping.
const StatusUnknown = "Unknown Status"

// Notice is one procurement notice extracted from a result item.
type Notice struct {
	Reference string `json:"reference"`
	Title     string `json:"title"`
	URL       string `json:"url"`
	Language  string `json:"language"`
	Status    string `json:"status"`
}

// ExtractNotices flattens aggregated pages into a deduplicated list of
// English-language notices. Items sharing a URL with an earlier item are
// skipped; the metadata status code is mapped via StatusMapping.
func ExtractNotices(pages []Page) []Notice {
	var notices []Notice
	seen := make(map[string]bool)

	for _, page := range pages {
		for _, item := range page.Results() {
			if stringField(item, "language") != "en" {
				continue
			}
			itemURL := stringField(item, "url")
			if itemURL != "" && seen[itemURL] {
				continue
			}
			seen[itemURL] = true

			notices = append(notices, Notice{
				Reference: stringField(item, "reference"),
				Title:     stringField(item, "title"),
				URL:       itemURL,
				Language:  "en",
				Status:    noticeStatus(item),
			})
		}
	}
	return notices
}

// noticeStatus reads the first metadata status code of an item and maps it.
// The API delivers metadata values as arrays of strings.
func noticeStatus(item map[string]any) string {
	meta, ok := item["metadata"].(map[string]any)
	if !ok {
		return StatusUnknown
	}
	codes, ok := meta["status"].([]any)
	if !ok || len(codes) == 0 {
		return StatusUnknown
	}
	code, ok := codes[0].(string)
	if !ok {
		return StatusUnknown
	}
	if status, found := StatusMapping[code]; found {
		return status
	}
	return StatusUnknown
}

func stringField(item map[string]any, key string) string {
	v, _ := item[key].(string)
	return v
}
