package tool

import (
	"context"
	"testing"

	"github.com/hupe1980/coursechat/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutlineTool_NoCourseFound(t *testing.T) {
	ot := NewOutlineTool(&fakeRetriever{})

	result, sources, err := ot.Call(context.Background(), map[string]any{"course_name": "Ghost"})
	require.NoError(t, err)
	assert.Equal(t, "No course found matching 'Ghost'", result)
	assert.Nil(t, sources)
}

func TestOutlineTool_FullOutline(t *testing.T) {
	fr := &fakeRetriever{
		courses: []core.CourseMeta{{
			Title:      "MCP Basics",
			Instructor: "Ada Lovelace",
			Link:       "https://example.com/mcp",
			Lessons: []core.LessonMeta{
				{Number: 0, Title: "Welcome", Link: "https://example.com/l0"},
				{Number: 1, Title: "Tools"},
			},
		}},
	}
	ot := NewOutlineTool(fr)

	result, _, err := ot.Call(context.Background(), map[string]any{"course_name": "MCP Basics"})
	require.NoError(t, err)
	assert.Equal(t,
		"Course: MCP Basics\n"+
			"Instructor: Ada Lovelace\n"+
			"Course Link: https://example.com/mcp\n"+
			"Lessons:\n"+
			"  Lesson 0: Welcome (https://example.com/l0)\n"+
			"  Lesson 1: Tools",
		result,
	)
}

func TestOutlineTool_PartialNameResolved(t *testing.T) {
	fr := &fakeRetriever{
		courses: []core.CourseMeta{{Title: "MCP Basics"}},
	}
	ot := NewOutlineTool(fr)

	result, _, err := ot.Call(context.Background(), map[string]any{"course_name": "partial"})
	require.NoError(t, err)
	assert.Contains(t, result, "Course: MCP Basics")
}

func TestOutlineTool_NoLessons(t *testing.T) {
	fr := &fakeRetriever{
		courses: []core.CourseMeta{{Title: "Empty Course"}},
	}
	ot := NewOutlineTool(fr)

	result, _, err := ot.Call(context.Background(), map[string]any{"course_name": "Empty Course"})
	require.NoError(t, err)
	assert.Equal(t, "Course: Empty Course\nNo lessons available for this course", result)
}

func TestOutlineTool_OptionalFieldsOmitted(t *testing.T) {
	fr := &fakeRetriever{
		courses: []core.CourseMeta{{
			Title:   "Bare Course",
			Lessons: []core.LessonMeta{{Number: 1, Title: "Only Lesson"}},
		}},
	}
	ot := NewOutlineTool(fr)

	result, _, err := ot.Call(context.Background(), map[string]any{"course_name": "Bare Course"})
	require.NoError(t, err)
	assert.Equal(t, "Course: Bare Course\nLessons:\n  Lesson 1: Only Lesson", result)
}
