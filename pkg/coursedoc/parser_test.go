package coursedoc

import (
	"strings"
	"testing"
)

const sampleDoc = `Course Title: Building RAG Applications
Course Link: https://example.com/courses/rag
Course Instructor: Ada Lovelace

Lesson 0: Introduction
Lesson Link: https://example.com/courses/rag/lesson/0
Welcome to the course. This lesson covers the big picture.

Lesson 1: Retrieval Basics
Lesson Link: https://example.com/courses/rag/lesson/1
Retrieval means finding relevant text. We embed documents into vectors.

Lesson 2: Generation
Generation turns retrieved context into an answer.
`

func TestParseWellFormedDocument(t *testing.T) {
	doc, warnings := Parse(sampleDoc)
	if doc == nil {
		t.Fatal("expected a document")
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}

	if doc.Title != "Building RAG Applications" {
		t.Errorf("title = %q", doc.Title)
	}
	if doc.Link != "https://example.com/courses/rag" {
		t.Errorf("link = %q", doc.Link)
	}
	if doc.Instructor != "Ada Lovelace" {
		t.Errorf("instructor = %q", doc.Instructor)
	}

	if len(doc.Lessons) != 3 {
		t.Fatalf("expected 3 lessons, got %d", len(doc.Lessons))
	}

	l0 := doc.Lessons[0]
	if l0.Number != 0 || l0.Title != "Introduction" {
		t.Errorf("lesson 0 = %+v", l0)
	}
	if l0.Link != "https://example.com/courses/rag/lesson/0" {
		t.Errorf("lesson 0 link = %q", l0.Link)
	}
	if !strings.Contains(l0.Content, "big picture") {
		t.Errorf("lesson 0 content = %q", l0.Content)
	}

	l2 := doc.Lessons[2]
	if l2.Number != 2 || l2.Link != "" {
		t.Errorf("lesson 2 = %+v", l2)
	}
	if !strings.Contains(l2.Content, "retrieved context") {
		t.Errorf("lesson 2 content = %q", l2.Content)
	}
}

func TestParseEmptyDocument(t *testing.T) {
	doc, warnings := Parse("   \n\n  ")
	if doc != nil {
		t.Errorf("expected nil document, got %+v", doc)
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for empty input")
	}
}

func TestParseMissingTitleHeader(t *testing.T) {
	raw := "Some Untitled Course\n\nLesson 1: Only Lesson\nBody text here.\n"
	doc, warnings := Parse(raw)
	if doc == nil {
		t.Fatal("expected best-effort document")
	}
	if doc.Title != "Some Untitled Course" {
		t.Errorf("fallback title = %q", doc.Title)
	}
	if len(warnings) == 0 {
		t.Error("expected a missing-title warning")
	}
	if len(doc.Lessons) != 1 || doc.Lessons[0].Number != 1 {
		t.Errorf("lessons = %+v", doc.Lessons)
	}
}

func TestParseContentWithoutLessonMarkers(t *testing.T) {
	raw := "Course Title: Flat Course\n\nJust some prose with no lesson headers at all."
	doc, warnings := Parse(raw)
	if doc == nil {
		t.Fatal("expected a document")
	}
	if len(doc.Lessons) != 1 || doc.Lessons[0].Number != 0 {
		t.Fatalf("expected implicit lesson 0, got %+v", doc.Lessons)
	}
	if !strings.Contains(doc.Lessons[0].Content, "no lesson headers") {
		t.Errorf("content = %q", doc.Lessons[0].Content)
	}
	if len(warnings) == 0 {
		t.Error("expected a warning for content before lesson markers")
	}
}

func TestParseInvalidLessonNumber(t *testing.T) {
	raw := "Course Title: X\n\nLesson 99999999999999999999: overflow\ntext\n"
	doc, warnings := Parse(raw)
	if doc == nil {
		t.Fatal("expected a document")
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w.Reason, "invalid lesson number") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected invalid lesson number warning, got %v", warnings)
	}
}

func TestParseWarningString(t *testing.T) {
	w := ParseWarning{Line: 3, Reason: "oops"}
	if w.String() != "line 3: oops" {
		t.Errorf("got %q", w.String())
	}
	w = ParseWarning{Reason: "oops"}
	if w.String() != "oops" {
		t.Errorf("got %q", w.String())
	}
}
