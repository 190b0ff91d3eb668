package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devradar/devradar/domain/chat"
	"github.com/devradar/devradar/domain/posting"
	"github.com/devradar/devradar/domain/search"
)

func newTestChat(gate *fakeGate, retriever *fakeRetriever, gen *fakeGenerator, history chat.HistoryStore) *ChatService {
	return NewChatService(gate, &fakePostingEmbedder{vector: []float64{1}}, retriever, gen, history, ChatOptions{}, discardLogger())
}

func TestChat_AnswersWithRetrievedContext(t *testing.T) {
	retriever := &fakeRetriever{result: search.NewResult([]posting.ClassifiedPosting{
		posting.NewClassifiedPosting("p", "", "", "Go Dev", "", "", nil, "Acme", []string{"GO"}, posting.SenioritySenior, "https://x/1", nil),
	}, false)}
	gen := &fakeGenerator{content: "Hay una vacante de Go en Acme."}
	history := newFakeHistory()

	answer, err := newTestChat(&fakeGate{allow: true}, retriever, gen, history).Ask(context.Background(), "s1", "vacantes de golang?")
	require.NoError(t, err)

	assert.Equal(t, "Hay una vacante de Go en Acme.", answer.Reply())
	assert.Equal(t, []string{"https://x/1"}, answer.Sources())
	assert.False(t, answer.Degraded())

	msgs := gen.lastReq.Messages()
	require.NotEmpty(t, msgs)
	assert.Equal(t, "system", msgs[0].Role())
	assert.Contains(t, msgs[0].Content(), "Go Dev")
	assert.Contains(t, msgs[0].Content(), "Acme")

	require.Len(t, history.exchanges["s1"], 1)
	assert.Equal(t, "vacantes de golang?", history.exchanges["s1"][0].Question())
}

func TestChat_OffTopicGetsRedirectWithoutRetrieval(t *testing.T) {
	gen := &fakeGenerator{content: "should not be called"}
	history := newFakeHistory()

	answer, err := newTestChat(&fakeGate{allow: false}, &fakeRetriever{}, gen, history).Ask(context.Background(), "s1", "receta de milanesas")
	require.NoError(t, err)

	assert.Equal(t, offTopicReply, answer.Reply())
	assert.Empty(t, answer.Sources())
	assert.Empty(t, gen.lastReq.Messages(), "generator must not be called for off-topic messages")
	assert.Empty(t, history.exchanges["s1"], "off-topic turns are not recorded")
}

func TestChat_HistoryWindowBoundsContext(t *testing.T) {
	history := newFakeHistory()
	for i := 0; i < 8; i++ {
		_ = history.Append(context.Background(), "s1", chat.NewExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)))
	}

	gen := &fakeGenerator{content: "ok"}
	svc := newTestChat(&fakeGate{allow: true}, &fakeRetriever{result: search.NewResult(nil, false)}, gen, history)

	_, err := svc.Ask(context.Background(), "s1", "nueva pregunta")
	require.NoError(t, err)

	// system + 5 exchanges (2 messages each) + current question.
	msgs := gen.lastReq.Messages()
	require.Len(t, msgs, 1+5*2+1)
	assert.Equal(t, "q3", msgs[1].Content(), "window keeps only the most recent exchanges")
	assert.Equal(t, "nueva pregunta", msgs[len(msgs)-1].Content())
}

func TestChat_ConfiguredHistoryWindow(t *testing.T) {
	history := newFakeHistory()
	for i := 0; i < 8; i++ {
		_ = history.Append(context.Background(), "s1", chat.NewExchange(fmt.Sprintf("q%d", i), fmt.Sprintf("a%d", i)))
	}

	gen := &fakeGenerator{content: "ok"}
	svc := NewChatService(&fakeGate{allow: true}, &fakePostingEmbedder{vector: []float64{1}},
		&fakeRetriever{result: search.NewResult(nil, false)}, gen, history,
		ChatOptions{HistoryWindow: 2}, discardLogger())

	_, err := svc.Ask(context.Background(), "s1", "nueva pregunta")
	require.NoError(t, err)

	msgs := gen.lastReq.Messages()
	require.Len(t, msgs, 1+2*2+1)
	assert.Equal(t, "q6", msgs[1].Content())
}

func TestChat_DegradedResultIsFlagged(t *testing.T) {
	retriever := &fakeRetriever{result: search.NewResult([]posting.ClassifiedPosting{
		posting.NewClassifiedPosting("p", "", "", "T", "", "", nil, "", nil, posting.SeniorityUnspecified, "u1", nil),
	}, true)}
	gen := &fakeGenerator{content: "respuesta"}

	answer, err := newTestChat(&fakeGate{allow: true}, retriever, gen, newFakeHistory()).Ask(context.Background(), "s1", "vacantes?")
	require.NoError(t, err)
	assert.True(t, answer.Degraded())
	assert.Contains(t, gen.lastReq.Messages()[0].Content(), "recent sample")
}

func TestChat_EmptyMessageRejected(t *testing.T) {
	svc := newTestChat(&fakeGate{allow: true}, &fakeRetriever{}, &fakeGenerator{}, newFakeHistory())
	_, err := svc.Ask(context.Background(), "s1", "   ")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestChat_RetrieverErrorPropagates(t *testing.T) {
	retriever := &fakeRetriever{err: fmt.Errorf("all paths down")}
	svc := newTestChat(&fakeGate{allow: true}, retriever, &fakeGenerator{}, newFakeHistory())

	_, err := svc.Ask(context.Background(), "s1", "vacantes?")
	assert.Error(t, err)
}

func TestChat_Reset(t *testing.T) {
	history := newFakeHistory()
	_ = history.Append(context.Background(), "s1", chat.NewExchange("q", "a"))

	svc := newTestChat(&fakeGate{allow: true}, &fakeRetriever{}, &fakeGenerator{}, history)
	require.NoError(t, svc.Reset(context.Background(), "s1"))
	assert.Empty(t, history.exchanges["s1"])
}
