package posting

import (
	"sort"
	"strings"
)

// Seniority is the experience level extracted from a posting.
type Seniority string

// Seniority values.
const (
	SeniorityTrainee     Seniority = "trainee"
	SeniorityJunior      Seniority = "junior"
	SenioritySemiSenior  Seniority = "semi-senior"
	SenioritySenior      Seniority = "senior"
	SeniorityLead        Seniority = "lead"
	SeniorityUnspecified Seniority = "unspecified"
)

// ParseSeniority maps free-form seniority text to a Seniority value.
func ParseSeniority(s string) Seniority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "trainee", "intern", "practicante":
		return SeniorityTrainee
	case "junior", "jr":
		return SeniorityJunior
	case "semi-senior", "semisenior", "semi senior", "ssr", "mid", "mid-level":
		return SenioritySemiSenior
	case "senior", "sr":
		return SenioritySenior
	case "lead", "tech lead", "staff", "principal":
		return SeniorityLead
	default:
		return SeniorityUnspecified
	}
}

// LocationType is the work arrangement extracted from a posting.
type LocationType string

// LocationType values.
const (
	LocationRemote      LocationType = "remote"
	LocationHybrid      LocationType = "hybrid"
	LocationOnsite      LocationType = "onsite"
	LocationUnspecified LocationType = "unspecified"
)

// ParseLocationType maps free-form location text to a LocationType value.
func ParseLocationType(s string) LocationType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "remote", "remoto":
		return LocationRemote
	case "hybrid", "híbrido", "hibrido":
		return LocationHybrid
	case "onsite", "on-site", "presencial":
		return LocationOnsite
	default:
		return LocationUnspecified
	}
}

// Classification is the ephemeral result of classifying one posting.
// It is consumed by the pipeline and never persisted standalone.
type Classification struct {
	valid        bool
	skills       []string
	seniority    Seniority
	salaryText   string
	locationType LocationType
}

// NewClassification creates a Classification. Skills are uppercased,
// deduplicated, and sorted.
func NewClassification(valid bool, skills []string, seniority Seniority, salaryText string, locationType LocationType) Classification {
	return Classification{
		valid:        valid,
		skills:       canonicalSkills(skills),
		seniority:    seniority,
		salaryText:   salaryText,
		locationType: locationType,
	}
}

// InvalidClassification is the fail-closed default: not a tech posting,
// no skills. Used when the classification service is unavailable and the
// caller must keep bogus defaults out of the corpus.
func InvalidClassification() Classification {
	return Classification{
		valid:        false,
		seniority:    SeniorityUnspecified,
		locationType: LocationUnspecified,
	}
}

// PermissiveClassification is the fail-open default: treated as valid with
// no extracted detail. Used by interactive gates so a transient service
// outage never blocks an end user.
func PermissiveClassification() Classification {
	return Classification{
		valid:        true,
		seniority:    SeniorityUnspecified,
		locationType: LocationUnspecified,
	}
}

// Valid returns whether the posting is a relevant tech posting.
func (c Classification) Valid() bool { return c.valid }

// Skills returns the extracted skills (uppercased, deduplicated, sorted).
func (c Classification) Skills() []string {
	out := make([]string, len(c.skills))
	copy(out, c.skills)
	return out
}

// Seniority returns the extracted seniority level.
func (c Classification) Seniority() Seniority { return c.seniority }

// SalaryText returns the salary text the classifier extracted.
func (c Classification) SalaryText() string { return c.salaryText }

// LocationType returns the extracted work arrangement.
func (c Classification) LocationType() LocationType { return c.locationType }

func canonicalSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
