package tool

import (
	"context"
	"fmt"
	"strings"

	"github.com/hupe1980/coursechat/core"
	"github.com/hupe1980/coursechat/internal/util"
)

// OutlineToolName is the name under which the outline tool is exposed.
const OutlineToolName = "get_course_outline"

type outlineArgs struct {
	CourseName string `json:"course_name" description:"Course title (partial matches work, e.g. 'MCP', 'Introduction')"`
}

// OutlineTool retrieves course outline information: course title, instructor,
// course link and the complete lesson list.
type OutlineTool struct {
	retriever  core.Retriever
	parameters map[string]any
}

// NewOutlineTool constructs the outline tool over the given retriever.
func NewOutlineTool(retriever core.Retriever) *OutlineTool {
	return &OutlineTool{
		retriever:  retriever,
		parameters: util.CreateSchema(outlineArgs{}),
	}
}

// Name implements Tool.
func (t *OutlineTool) Name() string { return OutlineToolName }

// Description implements Tool.
func (t *OutlineTool) Description() string {
	return "Retrieve course outline information including course title, course link, " +
		"and complete lesson list. Use this when users ask for course structure, " +
		"table of contents, lesson listings, or course overviews."
}

// Parameters implements Tool.
func (t *OutlineTool) Parameters() map[string]any { return t.parameters }

// Call implements Tool. The course name is resolved with partial matching; an
// unresolved name yields a deterministic "no course found" message.
func (t *OutlineTool) Call(ctx context.Context, args map[string]any) (string, []core.Source, error) {
	courseName, _ := args["course_name"].(string)

	title, ok := t.retriever.ResolveCourseName(ctx, courseName)
	if !ok {
		return fmt.Sprintf("No course found matching '%s'", courseName), nil, nil
	}

	var target *core.CourseMeta
	for _, course := range t.retriever.ListCourseMetadata(ctx) {
		if course.Title == title {
			c := course
			target = &c
			break
		}
	}
	if target == nil {
		return fmt.Sprintf("No detailed information found for course: %s", title), nil, nil
	}

	return formatOutline(*target), nil, nil
}

// formatOutline renders the fixed course outline text block.
func formatOutline(course core.CourseMeta) string {
	parts := []string{fmt.Sprintf("Course: %s", course.Title)}

	if course.Instructor != "" {
		parts = append(parts, fmt.Sprintf("Instructor: %s", course.Instructor))
	}
	if course.Link != "" {
		parts = append(parts, fmt.Sprintf("Course Link: %s", course.Link))
	}

	if len(course.Lessons) == 0 {
		parts = append(parts, "No lessons available for this course")
		return strings.Join(parts, "\n")
	}

	parts = append(parts, "Lessons:")
	for _, lesson := range course.Lessons {
		line := fmt.Sprintf("  Lesson %d: %s", lesson.Number, lesson.Title)
		if lesson.Link != "" {
			line += fmt.Sprintf(" (%s)", lesson.Link)
		}
		parts = append(parts, line)
	}

	return strings.Join(parts, "\n")
}
