package classifier

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/infrastructure/provider"
)

// fakeTextGenerator implements provider.TextGenerator for tests.
type fakeTextGenerator struct {
	content string
	err     error
	calls   int
}

func (f *fakeTextGenerator) ChatCompletion(_ context.Context, _ provider.ChatCompletionRequest) (provider.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return provider.ChatCompletionResponse{}, f.err
	}
	return provider.NewChatCompletionResponse(f.content, "stop"), nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClassifier_Classify(t *testing.T) {
	gen := &fakeTextGenerator{content: `{
		"is_valid_tech": true,
		"skills": ["python", "django"],
		"seniority": "senior",
		"salary_text": "$2000 - $3000",
		"location_type": "remoto"
	}`}
	c := New(gen, FailClosed, discardLogger())

	cls, err := c.Classify(context.Background(), "Backend Developer", "Python y Django")
	require.NoError(t, err)

	assert.True(t, cls.Valid())
	assert.Equal(t, posting.SenioritySenior, cls.Seniority())
	assert.Equal(t, "$2000 - $3000", cls.SalaryText())
	assert.Equal(t, posting.LocationRemote, cls.LocationType())
	assert.Contains(t, cls.Skills(), "PYTHON")
	assert.Contains(t, cls.Skills(), "DJANGO")
}

func TestClassifier_Classify_ExtractsJSONFromProse(t *testing.T) {
	gen := &fakeTextGenerator{content: "Here is the analysis:\n```json\n" +
		`{"is_valid_tech": true, "skills": [], "seniority": "junior", "salary_text": "No especificado", "location_type": "presencial"}` +
		"\n```\nLet me know if you need anything else."}
	c := New(gen, FailClosed, discardLogger())

	cls, err := c.Classify(context.Background(), "QA Tester", "")
	require.NoError(t, err)
	assert.True(t, cls.Valid())
	assert.Equal(t, posting.SeniorityJunior, cls.Seniority())
	assert.Equal(t, posting.LocationOnsite, cls.LocationType())
}

func TestClassifier_Classify_SupplementsSkillsFromText(t *testing.T) {
	gen := &fakeTextGenerator{content: `{"is_valid_tech": true, "skills": [], "seniority": "no especificado", "salary_text": "", "location_type": ""}`}
	c := New(gen, FailClosed, discardLogger())

	cls, err := c.Classify(context.Background(), "React Developer", "Experiencia con TypeScript y Docker")
	require.NoError(t, err)
	assert.Contains(t, cls.Skills(), "REACT")
	assert.Contains(t, cls.Skills(), "TYPESCRIPT")
	assert.Contains(t, cls.Skills(), "DOCKER")
}

func TestClassifier_Classify_FailClosed(t *testing.T) {
	gen := &fakeTextGenerator{err: errors.New("upstream down")}
	c := New(gen, FailClosed, discardLogger())

	cls, err := c.Classify(context.Background(), "Dev", "desc")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, cls.Valid())
}

func TestClassifier_Classify_FailOpen(t *testing.T) {
	gen := &fakeTextGenerator{err: errors.New("upstream down")}
	c := New(gen, FailOpen, discardLogger())

	cls, err := c.Classify(context.Background(), "Dev", "desc")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.True(t, cls.Valid())
}

func TestClassifier_Classify_MalformedReply(t *testing.T) {
	gen := &fakeTextGenerator{content: "sorry, I cannot help with that"}
	c := New(gen, FailClosed, discardLogger())

	cls, err := c.Classify(context.Background(), "Dev", "desc")
	require.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, cls.Valid())
}

func TestFirstJSONBlock(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"bare", `{"a": 1}`, `{"a": 1}`, true},
		{"nested", `{"a": {"b": 2}}`, `{"a": {"b": 2}}`, true},
		{"prose around", `before {"a": 1} after`, `{"a": 1}`, true},
		{"brace in string", `{"a": "}"}`, `{"a": "}"}`, true},
		{"escaped quote", `{"a": "\"}"}`, `{"a": "\"}"}`, true},
		{"no json", "nothing here", "", false},
		{"unbalanced", `{"a": 1`, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := firstJSONBlock(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIntentGate_Allow(t *testing.T) {
	gate := NewIntentGate(&fakeTextGenerator{content: "SI"}, FailOpen, discardLogger())
	assert.True(t, gate.Allow(context.Background(), "cuanto paga un dev senior?"))

	gate = NewIntentGate(&fakeTextGenerator{content: "NO"}, FailOpen, discardLogger())
	assert.False(t, gate.Allow(context.Background(), "receta de empanadas"))
}

func TestIntentGate_PolicyOnFailure(t *testing.T) {
	failing := &fakeTextGenerator{err: errors.New("down")}

	open := NewIntentGate(failing, FailOpen, discardLogger())
	assert.True(t, open.Allow(context.Background(), "anything"))

	closed := NewIntentGate(&fakeTextGenerator{err: errors.New("down")}, FailClosed, discardLogger())
	assert.False(t, closed.Allow(context.Background(), "anything"))
}
