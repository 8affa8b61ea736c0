package core

import "context"

// ChunkMeta describes the provenance of one retrieved passage.
type ChunkMeta struct {
	CourseTitle  string `json:"course_title"`
	LessonNumber *int   `json:"lesson_number,omitempty"`
}

// SearchResults is the outcome of a single similarity search. Err carries a
// retrieval-level failure as text; tools surface it verbatim instead of
// aborting the round.
type SearchResults struct {
	Documents []string    `json:"documents"`
	Metadata  []ChunkMeta `json:"metadata"`
	Err       string      `json:"error,omitempty"`
}

// IsEmpty reports whether the search produced no hits.
func (r SearchResults) IsEmpty() bool { return len(r.Documents) == 0 }

// LessonMeta describes one lesson of a course.
type LessonMeta struct {
	Number int    `json:"lesson_number"`
	Title  string `json:"lesson_title"`
	Link   string `json:"lesson_link,omitempty"`
}

// CourseMeta describes one indexed course.
type CourseMeta struct {
	Title      string       `json:"title"`
	Instructor string       `json:"instructor,omitempty"`
	Link       string       `json:"course_link,omitempty"`
	Lessons    []LessonMeta `json:"lessons,omitempty"`
}

// Retriever is the narrow interface to the vector-similarity search engine and
// its course metadata. Embedding, indexing and persistence live behind it;
// this core only reads.
//
// Implementations must be safe for concurrent use.
type Retriever interface {
	// Search runs a similarity search, optionally filtered to a course
	// (partial name allowed) and/or a lesson number (nil means no filter).
	// Retrieval failures are reported through SearchResults.Err, not an error.
	Search(ctx context.Context, query, courseName string, lessonNumber *int) SearchResults

	// ResolveCourseName resolves a partial course name to the exact stored
	// title. The second return is false when no course matches.
	ResolveCourseName(ctx context.Context, name string) (string, bool)

	// GetLessonLink returns the link of a lesson identified by exact course
	// title and lesson number. The second return is false when unknown.
	GetLessonLink(ctx context.Context, courseTitle string, lessonNumber int) (string, bool)

	// ListCourseMetadata returns metadata for every indexed course.
	ListCourseMetadata(ctx context.Context) []CourseMeta
}
