package coursechat

import (
	"context"
	"testing"

	"github.com/hupe1980/coursechat/completion"
	"github.com/hupe1980/coursechat/core"
	"github.com/hupe1980/coursechat/retriever"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func testRetriever() *retriever.Static {
	courses := []core.CourseMeta{{
		Title:      "MCP Basics",
		Instructor: "Ada Lovelace",
		Lessons: []core.LessonMeta{
			{Number: 1, Title: "Why MCP", Link: "https://example.com/mcp/1"},
		},
	}}
	chunks := []retriever.Chunk{
		{CourseTitle: "MCP Basics", LessonNumber: intPtr(1), Text: "MCP standardizes tool access for models."},
	}
	return retriever.NewStatic(courses, chunks)
}

func TestAnswer_ToolBackedQuery(t *testing.T) {
	client := completion.NewMockClient()
	client.QueueToolCalls(core.ToolCall{
		ID:        "call_1",
		Name:      "search_course_content",
		Arguments: `{"query":"mcp"}`,
	})
	client.QueueStop("MCP standardizes tool access.")

	cc := New(client, testRetriever())
	sid, err := cc.CreateSession()
	require.NoError(t, err)

	answer, sources, err := cc.Answer(context.Background(), sid, "What is MCP?")
	require.NoError(t, err)
	assert.Equal(t, "MCP standardizes tool access.", answer)
	require.NotEmpty(t, sources)
	assert.Contains(t, string(sources[0]), "MCP Basics - Lesson 1")
	assert.Equal(t, 2, client.CallCount())
}

func TestAnswer_HistoryCarriedIntoNextQuery(t *testing.T) {
	client := completion.NewMockClient()
	client.QueueStop("First answer.")
	client.QueueStop("Second answer.")

	cc := New(client, testRetriever())
	sid, err := cc.CreateSession()
	require.NoError(t, err)

	_, _, err = cc.Answer(context.Background(), sid, "first question")
	require.NoError(t, err)

	_, _, err = cc.Answer(context.Background(), sid, "second question")
	require.NoError(t, err)

	reqs := client.Requests()
	require.Len(t, reqs, 2)

	msgs := reqs[1].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, core.NewUserTurn("first question"), msgs[0])
	assert.Equal(t, core.NewAssistantTurn("First answer."), msgs[1])
	assert.Equal(t, core.NewUserTurn("second question"), msgs[2])
}

func TestAnswer_SourcesDoNotLeakAcrossQueries(t *testing.T) {
	client := completion.NewMockClient()
	client.QueueToolCalls(core.ToolCall{
		ID:        "call_1",
		Name:      "search_course_content",
		Arguments: `{"query":"mcp"}`,
	})
	client.QueueStop("Answer with sources.")
	client.QueueStop("Plain answer.")

	cc := New(client, testRetriever())
	sid, err := cc.CreateSession()
	require.NoError(t, err)

	_, sources, err := cc.Answer(context.Background(), sid, "What is MCP?")
	require.NoError(t, err)
	assert.NotEmpty(t, sources)

	_, sources, err = cc.Answer(context.Background(), sid, "Thanks!")
	require.NoError(t, err)
	assert.Empty(t, sources)
}

func TestAnswer_HistoryBounded(t *testing.T) {
	client := completion.NewMockClient()
	cc := New(client, testRetriever(), func(o *Options) { o.MaxHistory = 1 })

	sid, err := cc.CreateSession()
	require.NoError(t, err)

	for _, q := range []string{"q1", "q2", "q3"} {
		client.QueueStop("answer to " + q)
		_, _, err = cc.Answer(context.Background(), sid, q)
		require.NoError(t, err)
	}

	// Only the latest exchange survives, so the last request carries exactly
	// one exchange of history plus the new query.
	reqs := client.Requests()
	msgs := reqs[2].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "q2", msgs[0].Content)
	assert.Equal(t, "answer to q2", msgs[1].Content)
	assert.Equal(t, "q3", msgs[2].Content)
}

func TestAnswerWithHistory_ParsesFlatTranscript(t *testing.T) {
	client := completion.NewMockClient()
	client.QueueStop("contextual answer")

	cc := New(client, testRetriever())

	answer, _, err := cc.AnswerWithHistory(
		context.Background(),
		"follow-up",
		"User: earlier question\nAssistant: earlier answer",
	)
	require.NoError(t, err)
	assert.Equal(t, "contextual answer", answer)

	msgs := client.Requests()[0].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, core.RoleUser, msgs[0].Role)
	assert.Equal(t, "earlier question", msgs[0].Content)
	assert.Equal(t, core.RoleAssistant, msgs[1].Role)
}

func TestAnswer_OutlineTool(t *testing.T) {
	client := completion.NewMockClient()
	client.QueueToolCalls(core.ToolCall{
		ID:        "call_1",
		Name:      "get_course_outline",
		Arguments: `{"course_name":"mcp"}`,
	})
	client.QueueStop("The course has one lesson.")

	cc := New(client, testRetriever())
	sid, err := cc.CreateSession()
	require.NoError(t, err)

	answer, sources, err := cc.Answer(context.Background(), sid, "Show the outline of MCP")
	require.NoError(t, err)
	assert.Equal(t, "The course has one lesson.", answer)
	assert.Empty(t, sources)

	// The tool result fed back into round 2 contains the rendered outline.
	msgs := client.Requests()[1].Messages
	assert.Contains(t, msgs[len(msgs)-1].Content, "Course: MCP Basics")
	assert.Contains(t, msgs[len(msgs)-1].Content, "Lesson 1: Why MCP")
}
