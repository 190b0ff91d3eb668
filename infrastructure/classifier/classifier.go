// Package classifier enriches raw postings with structured fields using an
// LLM and a versioned skill taxonomy.
package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/infrastructure/provider"
)

// ErrUnavailable indicates the classification service could not produce a
// usable verdict. Callers decide how to proceed based on the configured
// policy; the returned Classification already reflects that policy.
var ErrUnavailable = errors.New("classification unavailable")

// Policy controls the verdict substituted when classification fails.
type Policy int

const (
	// FailClosed substitutes a not-valid-tech verdict on failure. Batch
	// pipelines use this so ambiguous records are never published.
	FailClosed Policy = iota

	// FailOpen substitutes an accepting verdict on failure. Interactive
	// gates use this so a provider outage never blocks a user.
	FailOpen
)

const classifierSystemPrompt = `You are a strict data extraction engine for technology job postings.
Analyze the posting and respond with ONLY a JSON object, no prose, no code fences, with exactly these keys:
{
  "is_valid_tech": boolean, true only if this is a real technology job posting,
  "skills": array of technology names mentioned in the posting,
  "seniority": one of "trainee", "junior", "semi-senior", "senior", "lead", "no especificado",
  "salary_text": the salary exactly as written in the posting, or "No especificado",
  "location_type": one of "remoto", "hibrido", "presencial", "no especificado"
}`

// classifierReply is the JSON contract the model must honor.
type classifierReply struct {
	IsValidTech  bool     `json:"is_valid_tech"`
	Skills       []string `json:"skills"`
	Seniority    string   `json:"seniority"`
	SalaryText   string   `json:"salary_text"`
	LocationType string   `json:"location_type"`
}

// Classifier turns a raw posting's text into a Classification.
type Classifier struct {
	generator provider.TextGenerator
	taxonomy  Taxonomy
	policy    Policy
	logger    *slog.Logger
}

// New creates a Classifier with the given failure policy.
func New(generator provider.TextGenerator, policy Policy, logger *slog.Logger) *Classifier {
	return &Classifier{
		generator: generator,
		taxonomy:  NewTaxonomy(),
		policy:    policy,
		logger:    logger,
	}
}

// Classify extracts structured fields from a posting's title and description.
// On provider failure or malformed model output it returns the policy default
// together with ErrUnavailable so callers can count outages.
func (c *Classifier) Classify(ctx context.Context, title, description string) (posting.Classification, error) {
	req := provider.NewChatCompletionRequest([]provider.Message{
		provider.SystemMessage(classifierSystemPrompt),
		provider.UserMessage(fmt.Sprintf("Title: %s\n\nDescription:\n%s", title, description)),
	}).WithTemperature(0.1)

	resp, err := c.generator.ChatCompletion(ctx, req)
	if err != nil {
		c.logger.Warn("classification request failed", "error", err)
		return c.fallback(), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	reply, err := parseReply(resp.Content())
	if err != nil {
		c.logger.Warn("classification reply unparseable", "error", err)
		return c.fallback(), fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	skills := make([]string, 0, len(reply.Skills))
	for _, s := range reply.Skills {
		if canon := c.taxonomy.Canonicalize(s); canon != "" {
			skills = append(skills, canon)
		}
	}
	// Supplement with direct mentions the model may have missed.
	skills = append(skills, c.taxonomy.Extract(title+" "+description)...)

	return posting.NewClassification(
		reply.IsValidTech,
		skills,
		posting.ParseSeniority(reply.Seniority),
		reply.SalaryText,
		posting.ParseLocationType(reply.LocationType),
	), nil
}

func (c *Classifier) fallback() posting.Classification {
	if c.policy == FailOpen {
		return posting.PermissiveClassification()
	}
	return posting.InvalidClassification()
}

// parseReply extracts and decodes the first JSON object in the model output.
// Models wrap JSON in code fences or prose often enough that decoding the
// raw content directly is not reliable.
func parseReply(content string) (classifierReply, error) {
	block, ok := firstJSONBlock(content)
	if !ok {
		return classifierReply{}, fmt.Errorf("no JSON object in reply: %q", truncate(content, 120))
	}
	var reply classifierReply
	if err := json.Unmarshal([]byte(block), &reply); err != nil {
		return classifierReply{}, fmt.Errorf("decoding reply: %w", err)
	}
	return reply, nil
}

// firstJSONBlock returns the first balanced {...} block in s, skipping over
// braces inside string literals.
func firstJSONBlock(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
