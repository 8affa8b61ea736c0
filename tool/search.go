package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/coursechat/core"
	"github.com/hupe1980/coursechat/internal/util"
)

// ContentSearchToolName is the name under which the search tool is exposed.
const ContentSearchToolName = "search_course_content"

type searchArgs struct {
	Query        string  `json:"query" description:"What to search for in the course content"`
	CourseName   *string `json:"course_name" description:"Course title (partial matches work, e.g. 'MCP', 'Introduction')"`
	LessonNumber *int    `json:"lesson_number" description:"Specific lesson number to search within (e.g. 1, 2, 3)"`
}

// ContentSearchTool searches course materials with smart course name matching
// and lesson filtering. Each hit is rendered with a course/lesson header and
// produces one citation source, hyperlinked when the lesson link is known.
type ContentSearchTool struct {
	retriever  core.Retriever
	parameters map[string]any
}

// NewContentSearchTool constructs the search tool over the given retriever.
func NewContentSearchTool(retriever core.Retriever) *ContentSearchTool {
	return &ContentSearchTool{
		retriever:  retriever,
		parameters: util.CreateSchema(searchArgs{}),
	}
}

// Name implements Tool.
func (t *ContentSearchTool) Name() string { return ContentSearchToolName }

// Description implements Tool.
func (t *ContentSearchTool) Description() string {
	return "Search course materials with smart course name matching and lesson filtering"
}

// Parameters implements Tool.
func (t *ContentSearchTool) Parameters() map[string]any { return t.parameters }

// Call implements Tool. Retrieval errors are surfaced verbatim as the result
// text; an empty hit set yields a deterministic message echoing the applied
// filters.
func (t *ContentSearchTool) Call(ctx context.Context, args map[string]any) (string, []core.Source, error) {
	query, _ := args["query"].(string)

	var courseName string
	if s, ok := args["course_name"].(string); ok {
		courseName = s
	}
	lessonNumber := intArg(args, "lesson_number")

	results := t.retriever.Search(ctx, query, courseName, lessonNumber)
	if results.Err != "" {
		return results.Err, nil, nil
	}
	if results.IsEmpty() {
		var filterInfo strings.Builder
		if courseName != "" {
			fmt.Fprintf(&filterInfo, " in course '%s'", courseName)
		}
		if lessonNumber != nil {
			fmt.Fprintf(&filterInfo, " in lesson %d", *lessonNumber)
		}
		return fmt.Sprintf("No relevant content found%s.", filterInfo.String()), nil, nil
	}

	return t.formatResults(ctx, results)
}

// formatResults renders hits with course/lesson context and collects one
// source per hit.
func (t *ContentSearchTool) formatResults(ctx context.Context, results core.SearchResults) (string, []core.Source, error) {
	formatted := make([]string, 0, len(results.Documents))
	sources := make([]core.Source, 0, len(results.Documents))

	for i, doc := range results.Documents {
		var meta core.ChunkMeta
		if i < len(results.Metadata) {
			meta = results.Metadata[i]
		}

		title := meta.CourseTitle
		if title == "" {
			title = "unknown"
		}

		header := "[" + title
		display := title
		if meta.LessonNumber != nil {
			header += fmt.Sprintf(" - Lesson %d", *meta.LessonNumber)
			display += fmt.Sprintf(" - Lesson %d", *meta.LessonNumber)
		}
		header += "]"

		source := core.Source(display)
		if meta.LessonNumber != nil {
			if link, ok := t.retriever.GetLessonLink(ctx, title, *meta.LessonNumber); ok {
				source = core.Source(fmt.Sprintf(
					`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`, link, display,
				))
			}
		}

		sources = append(sources, source)
		formatted = append(formatted, header+"\n"+doc)
	}

	return strings.Join(formatted, "\n\n"), sources, nil
}

// intArg extracts an optional integer argument, accepting the float64 shape
// produced by JSON decoding.
func intArg(args map[string]any, key string) *int {
	switch v := args[key].(type) {
	case float64:
		n := int(v)
		return &n
	case int:
		n := v
		return &n
	default:
		return nil
	}
}
