package model

// statusUnknownStr is the string representation for unknown status values.
const statusUnknownStr = "unknown"

// Status represents the pipeline outcome for a single URL.
type Status string

// Pipeline status constants.
const (
	// StatusUnknown represents an unset status.
	StatusUnknown Status = ""
	// StatusOK means the page was fetched and classified.
	StatusOK Status = "ok"
	// StatusFetchFailed means the fetch failed at the transport level.
	StatusFetchFailed Status = "fetch_failed"
	// StatusSkipped means the response was not HTML and was not classified.
	StatusSkipped Status = "skipped_non_html"
)

// String returns the string representation of the Status.
func (s Status) String() string {
	if s == StatusUnknown {
		return statusUnknownStr
	}
	return string(s)
}

// IsValid returns true if this is a known status.
func (s Status) IsValid() bool {
	switch s {
	case StatusOK, StatusFetchFailed, StatusSkipped:
		return true
	default:
		return false
	}
}

// ParseStatus converts a string to Status.
func ParseStatus(s string) Status {
	switch s {
	case "ok":
		return StatusOK
	case "fetch_failed":
		return StatusFetchFailed
	case "skipped_non_html":
		return StatusSkipped
	default:
		return StatusUnknown
	}
}

// Verdict is the classification outcome for one candidate URL.
//
// Design decision: Matches always contains a key for every catalog category,
// even when nothing matched. An empty list means "evaluated, no match" which
// is distinct from a missing key ("not evaluated"). Downstream formatting
// relies on this to render stable output.
type Verdict struct {
	// URL is the candidate URL this verdict describes.
	URL string `json:"url"`

	// Matches maps category name to the matched signature names,
	// in catalog declaration order.
	Matches map[string][]string `json:"matches"`

	// Status is the pipeline outcome for this URL.
	Status Status `json:"status"`

	// StatusCode is the HTTP response status code, if a response was received.
	StatusCode int `json:"status_code,omitempty"`

	// Proxy is the egress identifier used for the fetch, empty for direct.
	Proxy string `json:"proxy,omitempty"`

	// ErrorMessage holds the failure detail when Status is StatusFetchFailed.
	ErrorMessage string `json:"error,omitempty"`
}

// NewVerdict creates a Verdict for the given URL with empty match lists
// for every listed category.
func NewVerdict(url string, categories []string) *Verdict {
	matches := make(map[string][]string, len(categories))
	for _, c := range categories {
		matches[c] = []string{}
	}
	return &Verdict{
		URL:     url,
		Matches: matches,
	}
}

// Matched returns the matched signature names for a category.
// Returns an empty slice for categories with no matches or unknown categories.
func (v *Verdict) Matched(category string) []string {
	if v.Matches == nil {
		return []string{}
	}
	names, ok := v.Matches[category]
	if !ok {
		return []string{}
	}
	return names
}

// HasMatch returns true if at least one signature in the category matched.
func (v *Verdict) HasMatch(category string) bool {
	return len(v.Matched(category)) > 0
}
