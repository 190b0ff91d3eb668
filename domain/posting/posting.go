// Package posting provides domain types for job postings: the raw scraped
// observation, its classified form, and the pure normalization rules that
// turn one into the other.
package posting

import "time"

// ProcessingState tracks whether the pipeline has seen a raw posting.
type ProcessingState string

// ProcessingState values.
const (
	StateUnprocessed ProcessingState = "unprocessed"
	StateProcessed   ProcessingState = "processed"
)

// RawPosting is one scraped observation of a job advertisement. The posting
// URL is the natural key: re-scraping the same URL overwrites the descriptive
// fields rather than creating a new row.
type RawPosting struct {
	platform    string
	roleQuery   string
	title       string
	description string
	location    string
	salaryRaw   string
	company     string
	publishedAt string
	url         string
	state       ProcessingState
	processedAt *time.Time
}

// NewRawPosting creates an unprocessed RawPosting.
func NewRawPosting(platform, roleQuery, title, description, location, salaryRaw, company, publishedAt, url string) RawPosting {
	return RawPosting{
		platform:    platform,
		roleQuery:   roleQuery,
		title:       title,
		description: description,
		location:    location,
		salaryRaw:   salaryRaw,
		company:     company,
		publishedAt: publishedAt,
		url:         url,
		state:       StateUnprocessed,
	}
}

// Platform returns the source platform name.
func (p RawPosting) Platform() string { return p.platform }

// RoleQuery returns the search query that found the posting.
func (p RawPosting) RoleQuery() string { return p.roleQuery }

// Title returns the posting title as scraped.
func (p RawPosting) Title() string { return p.title }

// Description returns the free-text description.
func (p RawPosting) Description() string { return p.description }

// Location returns the free-text location.
func (p RawPosting) Location() string { return p.location }

// SalaryRaw returns the salary text exactly as scraped.
func (p RawPosting) SalaryRaw() string { return p.salaryRaw }

// Company returns the company name.
func (p RawPosting) Company() string { return p.company }

// PublishedAt returns the publication-date text as scraped.
func (p RawPosting) PublishedAt() string { return p.publishedAt }

// URL returns the posting URL, the natural key.
func (p RawPosting) URL() string { return p.url }

// State returns the processing state.
func (p RawPosting) State() ProcessingState { return p.state }

// ProcessedAt returns when the pipeline marked the posting processed, or nil.
func (p RawPosting) ProcessedAt() *time.Time {
	if p.processedAt == nil {
		return nil
	}
	t := *p.processedAt
	return &t
}

// WithState returns a copy with the given state and processed timestamp.
func (p RawPosting) WithState(state ProcessingState, at time.Time) RawPosting {
	p.state = state
	if state == StateProcessed {
		p.processedAt = &at
	} else {
		p.processedAt = nil
	}
	return p
}

// PublishedTime parses the publication-date text. Sources emit dates in
// several shapes; anything unparseable yields a zero time rather than an
// error, so a bad date never drops a posting.
func (p RawPosting) PublishedTime() time.Time {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
		"02/01/2006",
		"02-01-2006",
		"January 2, 2006",
		"2 January 2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, p.publishedAt); err == nil {
			return t
		}
	}
	return time.Time{}
}
