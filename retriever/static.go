// Package retriever contains core.Retriever implementations. Static serves
// preloaded course material from memory with keyword scoring; production
// deployments plug a real vector-similarity engine behind the same interface.
package retriever

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/coursechat/core"
)

// DefaultMaxResults caps how many hits one search returns.
const DefaultMaxResults = 5

// Chunk is one indexed passage of course material.
type Chunk struct {
	CourseTitle  string
	LessonNumber *int
	Text         string
}

// Options configure a Static retriever.
type Options struct {
	// MaxResults caps the number of hits per search; values <= 0 fall back to
	// DefaultMaxResults.
	MaxResults int
}

// Static is an immutable in-memory Retriever over preloaded course metadata
// and content chunks. Scoring counts case-insensitive query term occurrences;
// ties keep insertion order. Safe for concurrent use since nothing mutates
// after construction.
type Static struct {
	courses    []core.CourseMeta
	chunks     []Chunk
	maxResults int
}

// NewStatic constructs a Static retriever over the given courses and chunks.
func NewStatic(courses []core.CourseMeta, chunks []Chunk, optFns ...func(o *Options)) *Static {
	opts := Options{MaxResults: DefaultMaxResults}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = DefaultMaxResults
	}
	return &Static{courses: courses, chunks: chunks, maxResults: opts.MaxResults}
}

// Search implements core.Retriever. An unresolvable course filter is reported
// through SearchResults.Err so callers can surface it verbatim.
func (s *Static) Search(ctx context.Context, query, courseName string, lessonNumber *int) core.SearchResults {
	var courseTitle string
	if courseName != "" {
		title, ok := s.ResolveCourseName(ctx, courseName)
		if !ok {
			return core.SearchResults{Err: fmt.Sprintf("No course found matching '%s'", courseName)}
		}
		courseTitle = title
	}

	type scored struct {
		chunk Chunk
		score int
	}

	terms := strings.Fields(strings.ToLower(query))
	var hits []scored
	for _, chunk := range s.chunks {
		if courseTitle != "" && chunk.CourseTitle != courseTitle {
			continue
		}
		if lessonNumber != nil && (chunk.LessonNumber == nil || *chunk.LessonNumber != *lessonNumber) {
			continue
		}
		text := strings.ToLower(chunk.Text)
		score := 0
		for _, term := range terms {
			score += strings.Count(text, term)
		}
		if score > 0 {
			hits = append(hits, scored{chunk: chunk, score: score})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].score > hits[j].score })
	if len(hits) > s.maxResults {
		hits = hits[:s.maxResults]
	}

	results := core.SearchResults{}
	for _, h := range hits {
		results.Documents = append(results.Documents, h.chunk.Text)
		results.Metadata = append(results.Metadata, core.ChunkMeta{
			CourseTitle:  h.chunk.CourseTitle,
			LessonNumber: h.chunk.LessonNumber,
		})
	}
	return results
}

// ResolveCourseName implements core.Retriever. Exact case-insensitive matches
// win over substring containment.
func (s *Static) ResolveCourseName(_ context.Context, name string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return "", false
	}
	for _, course := range s.courses {
		if strings.ToLower(course.Title) == needle {
			return course.Title, true
		}
	}
	for _, course := range s.courses {
		if strings.Contains(strings.ToLower(course.Title), needle) {
			return course.Title, true
		}
	}
	return "", false
}

// GetLessonLink implements core.Retriever.
func (s *Static) GetLessonLink(_ context.Context, courseTitle string, lessonNumber int) (string, bool) {
	for _, course := range s.courses {
		if course.Title != courseTitle {
			continue
		}
		for _, lesson := range course.Lessons {
			if lesson.Number == lessonNumber && lesson.Link != "" {
				return lesson.Link, true
			}
		}
	}
	return "", false
}

// ListCourseMetadata implements core.Retriever.
func (s *Static) ListCourseMetadata(_ context.Context) []core.CourseMeta {
	out := make([]core.CourseMeta, len(s.courses))
	copy(out, s.courses)
	return out
}
