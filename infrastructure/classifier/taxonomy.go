package classifier

import (
	"regexp"
	"sort"
	"strings"
)

// TaxonomyVersion identifies the current mapping table. Bump when entries
// change so re-classification runs can be attributed to a table revision.
const TaxonomyVersion = 3

// taxonomyEntry maps a detection pattern to a canonical skill name.
type taxonomyEntry struct {
	pattern   *regexp.Regexp
	canonical string
}

// Taxonomy is the single versioned mapping from free-form technology
// mentions to canonical skill names. It replaces the regex maps that were
// previously duplicated across pipeline revisions.
type Taxonomy struct {
	entries []taxonomyEntry
}

// NewTaxonomy returns the built-in taxonomy.
func NewTaxonomy() Taxonomy {
	mk := func(expr, canonical string) taxonomyEntry {
		return taxonomyEntry{pattern: regexp.MustCompile(expr), canonical: canonical}
	}
	return Taxonomy{entries: []taxonomyEntry{
		// Languages
		mk(`(?i)\bpython\b`, "PYTHON"),
		mk(`(?i)\bjava\b`, "JAVA"),
		mk(`(?i)\bjavascript\b`, "JAVASCRIPT"),
		mk(`(?i)\btypescript\b`, "TYPESCRIPT"),
		mk(`(?i)\bc#`, "C#"),
		mk(`(?i)\.net\b`, ".NET"),
		mk(`(?i)\bphp\b`, "PHP"),
		mk(`(?i)c\+\+`, "C++"),
		mk(`(?i)\bgo(lang)?\b`, "GO"),
		mk(`(?i)\bkotlin\b`, "KOTLIN"),
		mk(`(?i)\bruby\b`, "RUBY"),
		mk(`(?i)\brust\b`, "RUST"),
		mk(`(?i)\b(bash|shell)\b`, "BASH/SHELL"),

		// Backend frameworks
		mk(`(?i)\bdjango\b`, "DJANGO"),
		mk(`(?i)\bflask\b`, "FLASK"),
		mk(`(?i)\bfastapi\b`, "FASTAPI"),
		mk(`(?i)\bspring( boot)?\b`, "SPRING BOOT"),
		mk(`(?i)\blaravel\b`, "LARAVEL"),
		mk(`(?i)\bnode\.?js\b`, "NODE.JS"),
		mk(`(?i)\bexpress(\.js)?\b`, "EXPRESS.JS"),

		// Frontend
		mk(`(?i)\breact\b`, "REACT"),
		mk(`(?i)\bangular\b`, "ANGULAR"),
		mk(`(?i)\bvue(\.js)?\b`, "VUE.JS"),
		mk(`(?i)\bhtml\b`, "HTML"),
		mk(`(?i)\bcss\b`, "CSS"),
		mk(`(?i)\btailwind\b`, "TAILWIND"),
		mk(`(?i)\bbootstrap\b`, "BOOTSTRAP"),

		// Data
		mk(`(?i)\bsql server\b`, "SQL SERVER"),
		mk(`(?i)\bmysql\b`, "MYSQL"),
		mk(`(?i)\bpostgres(ql)?\b`, "POSTGRESQL"),
		mk(`(?i)\bmongo(db)?\b`, "MONGODB"),
		mk(`(?i)\bsql\b`, "SQL"),
		mk(`(?i)\bpandas\b`, "PANDAS"),
		mk(`(?i)\bnumpy\b`, "NUMPY"),
		mk(`(?i)\bpower bi\b`, "POWER BI"),
		mk(`(?i)\btableau\b`, "TABLEAU"),
		mk(`(?i)\bexcel\b`, "EXCEL"),

		// Cloud and infrastructure
		mk(`(?i)\b(aws|amazon web services)\b`, "AWS"),
		mk(`(?i)\bazure\b`, "AZURE"),
		mk(`(?i)\b(gcp|google cloud)\b`, "GOOGLE CLOUD"),
		mk(`(?i)\bdocker\b`, "DOCKER"),
		mk(`(?i)\b(kubernetes|k8s)\b`, "KUBERNETES"),
		mk(`(?i)\bjenkins\b`, "JENKINS"),
		mk(`(?i)\bterraform\b`, "TERRAFORM"),
		mk(`(?i)\bgit\b`, "GIT"),
		mk(`(?i)\blinux\b`, "LINUX"),

		// Security and networking
		mk(`(?i)\bkali\b`, "KALI LINUX"),
		mk(`(?i)\bwireshark\b`, "WIRESHARK"),
		mk(`(?i)\bcisco\b`, "CISCO"),
		mk(`(?i)\bccna\b`, "CCNA"),
		mk(`(?i)\bfirewall\b`, "FIREWALL"),
		mk(`(?i)\bowasp\b`, "OWASP"),
		mk(`(?i)\biso 27001\b`, "ISO 27001"),
	}}
}

// Canonicalize maps one free-form skill mention to its canonical name.
// Unknown skills pass through uppercased and trimmed.
func (t Taxonomy) Canonicalize(skill string) string {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return ""
	}
	for _, e := range t.entries {
		if e.pattern.MatchString(skill) {
			return e.canonical
		}
	}
	return strings.ToUpper(skill)
}

// Extract scans free text for known technology mentions and returns their
// canonical names, sorted and deduplicated.
func (t Taxonomy) Extract(text string) []string {
	found := make(map[string]struct{})
	for _, e := range t.entries {
		if e.pattern.MatchString(text) {
			found[e.canonical] = struct{}{}
		}
	}
	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
