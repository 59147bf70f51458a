package crm

import "github.com/coveline/crmdex/internal/core/domain"

const (
	// DefaultBaseURL is the CRM API root.
	DefaultBaseURL = "https://api.attio.com/v2"

	// DefaultWebURL is the root for deep links into the web UI.
	DefaultWebURL = "https://app.attio.com/w"

	// DefaultCallsObject is the object slug that holds call records.
	// Workspaces name this object themselves (calls, meetings, ...).
	DefaultCallsObject = "calls"

	// DefaultTranscriptSlug is the record attribute carrying the call
	// transcript text.
	DefaultTranscriptSlug = "transcript"

	// DefaultPageLimit is the page size requested from listing
	// endpoints.
	DefaultPageLimit = 500

	// DefaultRequestsPerSecond is the client-side throttle.
	DefaultRequestsPerSecond = 8.0
)

// Config holds the connector configuration.
type Config struct {
	// BaseURL is the API root. Defaults to DefaultBaseURL.
	BaseURL string

	// WebURL is the web UI root used for deep links.
	WebURL string

	// APIKey is the bearer token.
	APIKey string

	// CallsObject is the object slug holding call records.
	CallsObject string

	// TranscriptSlug is the record attribute carrying transcripts.
	TranscriptSlug string

	// NameSlugs is the priority list of field slugs probed for record
	// display names. Defaults to domain.DefaultNameSlugs.
	NameSlugs []string

	// PageLimit is the page size for listing endpoints.
	PageLimit int

	// RequestsPerSecond throttles outgoing requests.
	RequestsPerSecond float64
}

// withDefaults fills unset fields with their defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.WebURL == "" {
		c.WebURL = DefaultWebURL
	}
	if c.CallsObject == "" {
		c.CallsObject = DefaultCallsObject
	}
	if c.TranscriptSlug == "" {
		c.TranscriptSlug = DefaultTranscriptSlug
	}
	if len(c.NameSlugs) == 0 {
		c.NameSlugs = domain.DefaultNameSlugs
	}
	if c.PageLimit <= 0 {
		c.PageLimit = DefaultPageLimit
	}
	if c.RequestsPerSecond <= 0 {
		c.RequestsPerSecond = DefaultRequestsPerSecond
	}
	return c
}
