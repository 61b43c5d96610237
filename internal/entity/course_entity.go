package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Lesson belongs to exactly one course. The link is optional; lesson numbers
// are unique within their course.
type Lesson struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
}

// Course is one ingested course document. Titles are globally unique keys
// across both the catalog and the content index.
type Course struct {
	Id         uuid.UUID
	Title      string
	CourseLink string
	Instructor string
	Lessons    []Lesson
	// CatalogEmbedding is the vector of the course's searchable metadata
	// (title, instructor, lesson titles), used for fuzzy name resolution.
	CatalogEmbedding []float32
	CreatedAt        time.Time
	UpdatedAt        *time.Time
	DeletedAt        *time.Time
	IsDeleted        bool
}

// Namespace for deterministic ids, so re-ingesting the same document
// regenerates identical keys and stores can be replaced instead of grown.
var courseChatNamespace = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

// CourseId derives the stable course key from its case-normalized title.
func CourseId(title string) uuid.UUID {
	return uuid.NewSHA1(courseChatNamespace, []byte("course|"+NormalizeTitle(title)))
}

// NormalizeTitle is the canonical form used wherever titles act as keys.
func NormalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// LessonLink returns the link for a lesson number, falling back to empty.
func (c *Course) LessonLink(number int) string {
	for _, l := range c.Lessons {
		if l.Number == number {
			return l.Link
		}
	}
	return ""
}

// LessonTitle returns the title for a lesson number, falling back to empty.
func (c *Course) LessonTitle(number int) string {
	for _, l := range c.Lessons {
		if l.Number == number {
			return l.Title
		}
	}
	return ""
}
