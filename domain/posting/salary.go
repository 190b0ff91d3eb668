package posting

import (
	"regexp"
	"strconv"
	"strings"
)

// Monthly-conversion factors for salary periods.
const (
	hoursPerMonth = 160
	daysPerMonth  = 22
	weeksPerMonth = 4
)

// Plausibility band for a monthly USD figure. Anything outside is treated
// as a parsing artifact, not a salary.
const (
	minPlausibleSalary = 100
	maxPlausibleSalary = 1e9
)

// unspecifiedTokens are phrases the source corpus uses to say "no salary".
var unspecifiedTokens = []string{
	"no especificado",
	"a convenir",
	"convenir",
	"competitivo",
	"competitive",
	"negociable",
	"negotiable",
	"not specified",
	"n/a",
}

var numberPattern = regexp.MustCompile(`\d+(?:[.,]\d+)*`)

// rangePattern matches two numbers joined by an explicit range separator,
// with or without a currency symbol on the upper bound. Numbers that merely
// co-occur in the text ("$800 por 8 horas") are not a range.
var rangePattern = regexp.MustCompile(`(\d+(?:[.,]\d+)*)(?:\s*-\s*|\s+(?:a|y|to|hasta)\s+)\$?\s*(\d+(?:[.,]\d+)*)`)

// NormalizeSalary converts free-form salary text into a monthly USD figure.
// Returns false when the text carries no usable salary. Rules, in order:
// unspecified phrases are rejected; per-hour, per-day, per-week, and per-year
// amounts are converted to monthly; two numbers joined by a range separator
// ("-", "a", "y", "to", "hasta") yield the mean of the bounds, otherwise the
// first number wins; results outside the plausibility band are rejected.
// Thousand and decimal separators are normalized before parsing, so "1.500"
// is one thousand five hundred.
func NormalizeSalary(raw string) (float64, bool) {
	text := strings.ToLower(strings.TrimSpace(raw))
	if text == "" {
		return 0, false
	}
	for _, tok := range unspecifiedTokens {
		if strings.Contains(text, tok) {
			return 0, false
		}
	}

	numbers := extractNumbers(text)
	if len(numbers) == 0 {
		return 0, false
	}

	value := numbers[0]
	if m := rangePattern.FindStringSubmatch(text); m != nil {
		lo, okLo := parseLocaleNumber(m[1])
		hi, okHi := parseLocaleNumber(m[2])
		if okLo && okHi {
			value = (lo + hi) / 2
		}
	}

	value *= periodFactor(text)

	if value < minPlausibleSalary || value > maxPlausibleSalary {
		return 0, false
	}
	return value, true
}

// Period tokens are matched as whole words so that fragments inside
// unrelated words ("through", "hresources") never trigger a conversion.
var (
	hourlyPattern = regexp.MustCompile(`\bhoras?\b|\bhour(?:s|ly)?\b|\bhrs?\b|/hr?\b`)
	dailyPattern  = regexp.MustCompile(`\bd[ií]as?\b|\bdiari[oa]s?\b|\bdays?\b|\bdaily\b|/d\b`)
	weeklyPattern = regexp.MustCompile(`\bsemanas?\b|\bsemanal(?:es)?\b|\bweeks?\b|\bweekly\b|/wk?\b`)
	yearlyPattern = regexp.MustCompile(`\baños?\b|\banual(?:es)?\b|\byears?\b|\byearly\b|\bannum\b|\bannual(?:ly)?\b|\byr\b|/yr?\b`)
)

// periodFactor returns the multiplier that converts the stated period to a
// monthly amount. Text with no recognizable period is taken as monthly.
func periodFactor(text string) float64 {
	switch {
	case hourlyPattern.MatchString(text):
		return hoursPerMonth
	case dailyPattern.MatchString(text):
		return daysPerMonth
	case weeklyPattern.MatchString(text):
		return weeksPerMonth
	case yearlyPattern.MatchString(text):
		return 1.0 / 12
	default:
		return 1
	}
}

func extractNumbers(text string) []float64 {
	tokens := numberPattern.FindAllString(text, -1)
	out := make([]float64, 0, len(tokens))
	for _, tok := range tokens {
		if v, ok := parseLocaleNumber(tok); ok {
			out = append(out, v)
		}
	}
	return out
}

// parseLocaleNumber parses a numeric token that may use either '.' or ',' as
// thousand or decimal separator. When both appear, the last one is the
// decimal separator. When only one appears and exactly three digits follow,
// it is a thousands separator ("1.500" means 1500, not 1.5).
func parseLocaleNumber(tok string) (float64, bool) {
	lastDot := strings.LastIndex(tok, ".")
	lastComma := strings.LastIndex(tok, ",")

	switch {
	case lastDot >= 0 && lastComma >= 0:
		if lastDot > lastComma {
			tok = strings.ReplaceAll(tok, ",", "")
		} else {
			tok = strings.ReplaceAll(tok, ".", "")
			tok = strings.Replace(tok, ",", ".", 1)
		}
	case lastDot >= 0:
		tok = normalizeSingleSeparator(tok, ".")
	case lastComma >= 0:
		tok = normalizeSingleSeparator(tok, ",")
	}

	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func normalizeSingleSeparator(tok, sep string) string {
	parts := strings.Split(tok, sep)
	// Multiple occurrences, or a trailing group of exactly three digits,
	// means grouping: strip the separator entirely.
	if len(parts) > 2 || len(parts[len(parts)-1]) == 3 {
		return strings.Join(parts, "")
	}
	if sep == "," {
		return strings.Replace(tok, ",", ".", 1)
	}
	return tok
}
