package posting

import "time"

// ClassifiedPosting is the durable output of the pipeline: a posting that
// passed domain-relevance classification, enriched with skills, seniority,
// a normalized monthly salary, and an embedding vector. Shares the posting
// URL natural key with RawPosting.
type ClassifiedPosting struct {
	platform    string
	roleQuery   string
	publishedAt string
	title       string
	location    string
	description string
	salary      *float64
	company     string
	skills      []string
	seniority   Seniority
	url         string
	embedding   []float64
	createdAt   time.Time
}

// NewClassifiedPosting creates a ClassifiedPosting.
func NewClassifiedPosting(
	platform, roleQuery, publishedAt, title, location, description string,
	salary *float64,
	company string,
	skills []string,
	seniority Seniority,
	url string,
	embedding []float64,
) ClassifiedPosting {
	sk := make([]string, len(skills))
	copy(sk, skills)
	var emb []float64
	if embedding != nil {
		emb = make([]float64, len(embedding))
		copy(emb, embedding)
	}
	var sal *float64
	if salary != nil {
		v := *salary
		sal = &v
	}
	return ClassifiedPosting{
		platform:    platform,
		roleQuery:   roleQuery,
		publishedAt: publishedAt,
		title:       title,
		location:    location,
		description: description,
		salary:      sal,
		company:     company,
		skills:      sk,
		seniority:   seniority,
		url:         url,
		embedding:   emb,
	}
}

// Platform returns the source platform name.
func (p ClassifiedPosting) Platform() string { return p.platform }

// RoleQuery returns the search query that found the posting.
func (p ClassifiedPosting) RoleQuery() string { return p.roleQuery }

// PublishedAt returns the publication-date text.
func (p ClassifiedPosting) PublishedAt() string { return p.publishedAt }

// Title returns the posting title.
func (p ClassifiedPosting) Title() string { return p.title }

// Location returns the location text.
func (p ClassifiedPosting) Location() string { return p.location }

// Description returns the description text.
func (p ClassifiedPosting) Description() string { return p.description }

// Salary returns the normalized monthly USD salary, or nil.
func (p ClassifiedPosting) Salary() *float64 {
	if p.salary == nil {
		return nil
	}
	v := *p.salary
	return &v
}

// Company returns the company name.
func (p ClassifiedPosting) Company() string { return p.company }

// Skills returns the skill list.
func (p ClassifiedPosting) Skills() []string {
	out := make([]string, len(p.skills))
	copy(out, p.skills)
	return out
}

// Seniority returns the seniority level.
func (p ClassifiedPosting) Seniority() Seniority { return p.seniority }

// URL returns the posting URL, the natural key.
func (p ClassifiedPosting) URL() string { return p.url }

// Embedding returns the embedding vector, or nil when the posting could not
// be embedded. A nil embedding means the posting is stored but unsearchable
// by vector.
func (p ClassifiedPosting) Embedding() []float64 {
	if p.embedding == nil {
		return nil
	}
	out := make([]float64, len(p.embedding))
	copy(out, p.embedding)
	return out
}

// CreatedAt returns when the classified row was first written.
func (p ClassifiedPosting) CreatedAt() time.Time { return p.createdAt }

// WithCreatedAt returns a copy with the given creation time.
func (p ClassifiedPosting) WithCreatedAt(t time.Time) ClassifiedPosting {
	p.createdAt = t
	return p
}
