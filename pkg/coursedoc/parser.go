// Package coursedoc parses the course-script document format: a header block
// (title, link, instructor) followed by "Lesson N: title" sections, each with
// an optional lesson link line and a free-text body. Malformed documents
// degrade to best-effort parsing with warnings, never a hard failure.
package coursedoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

type Lesson struct {
	Number  int
	Title   string
	Link    string
	Content string
}

type Document struct {
	Title      string
	Link       string
	Instructor string
	Lessons    []Lesson
}

// ParseWarning records a degraded-but-continued parsing condition.
type ParseWarning struct {
	Line   int
	Reason string
}

func (w ParseWarning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Reason)
	}
	return w.Reason
}

var lessonHeaderRe = regexp.MustCompile(`^Lesson\s+(\d+):\s*(.*)$`)

const (
	titlePrefix      = "Course Title:"
	linkPrefix       = "Course Link:"
	instructorPrefix = "Course Instructor:"
	lessonLinkPrefix = "Lesson Link:"
)

// Parse reads a raw course document. A nil Document (with warnings) means the
// input held nothing usable; callers report that per-document and continue
// with the rest of the batch.
func Parse(raw string) (*Document, []ParseWarning) {
	var warnings []ParseWarning

	if strings.TrimSpace(raw) == "" {
		warnings = append(warnings, ParseWarning{Reason: "document is empty"})
		return nil, warnings
	}

	lines := strings.Split(raw, "\n")
	doc := &Document{}

	// Header block: leading "Course ..." lines (and blanks) before the body.
	bodyStart := 0
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, titlePrefix) {
			doc.Title = strings.TrimSpace(strings.TrimPrefix(trimmed, titlePrefix))
		} else if strings.HasPrefix(trimmed, linkPrefix) {
			doc.Link = strings.TrimSpace(strings.TrimPrefix(trimmed, linkPrefix))
		} else if strings.HasPrefix(trimmed, instructorPrefix) {
			doc.Instructor = strings.TrimSpace(strings.TrimPrefix(trimmed, instructorPrefix))
		} else if trimmed != "" {
			// first body line, header block ends here
			bodyStart = i
			break
		}
		bodyStart = i + 1
	}

	if doc.Title == "" {
		// Best-effort fallback: the first non-empty line stands in for the
		// missing title header.
		for i, line := range lines {
			if t := strings.TrimSpace(line); t != "" {
				doc.Title = t
				if i >= bodyStart {
					bodyStart = i + 1
				}
				warnings = append(warnings, ParseWarning{
					Line:   i + 1,
					Reason: "missing 'Course Title:' header, using first line as title",
				})
				break
			}
		}
	}
	if doc.Title == "" {
		warnings = append(warnings, ParseWarning{Reason: "document has no title"})
		return nil, warnings
	}

	var current *Lesson
	var content []string

	flush := func() {
		if current == nil {
			return
		}
		current.Content = strings.TrimSpace(strings.Join(content, "\n"))
		doc.Lessons = append(doc.Lessons, *current)
		current = nil
		content = nil
	}

	for i := bodyStart; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])

		if m := lessonHeaderRe.FindStringSubmatch(trimmed); m != nil {
			flush()
			number, err := strconv.Atoi(m[1])
			if err != nil || number < 0 {
				warnings = append(warnings, ParseWarning{
					Line:   i + 1,
					Reason: fmt.Sprintf("invalid lesson number %q", m[1]),
				})
				continue
			}
			current = &Lesson{Number: number, Title: strings.TrimSpace(m[2])}
			continue
		}

		if current != nil && strings.HasPrefix(trimmed, lessonLinkPrefix) && current.Link == "" && len(content) == 0 {
			current.Link = strings.TrimSpace(strings.TrimPrefix(trimmed, lessonLinkPrefix))
			continue
		}

		if current != nil {
			content = append(content, lines[i])
		} else if trimmed != "" && current == nil && len(doc.Lessons) == 0 {
			// Body text before any lesson marker: fold it into an implicit
			// lesson 0 so the material is still searchable.
			current = &Lesson{Number: 0}
			content = append(content, lines[i])
			warnings = append(warnings, ParseWarning{
				Line:   i + 1,
				Reason: "content before first lesson marker, treating as lesson 0",
			})
		}
	}
	flush()

	if len(doc.Lessons) == 0 {
		warnings = append(warnings, ParseWarning{
			Reason: fmt.Sprintf("course '%s' has no lesson content", doc.Title),
		})
	}

	return doc, warnings
}
