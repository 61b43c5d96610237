package tools

import (
	"context"
	"strings"
	"testing"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/memory"
	"ai-coursechat-be/pkg/rag/catalog"
)

func newOutlineFixture(t *testing.T) *CourseOutlineTool {
	t.Helper()

	courses := memory.NewCourseRepository()
	course := &entity.Course{
		Id:         entity.CourseId("MCP for Beginners"),
		Title:      "MCP for Beginners",
		CourseLink: "https://example.com/mcp",
		Instructor: "Grace Hopper",
		Lessons: []entity.Lesson{
			{Number: 0, Title: "Welcome"},
			{Number: 1, Title: "Servers and Clients"},
		},
		CatalogEmbedding: []float32{0, 1, 0},
	}
	if err := courses.Upsert(context.Background(), course); err != nil {
		t.Fatal(err)
	}

	emb := &fakeEmbedder{}
	resolver := catalog.NewResolver(courses, emb, 0.35)
	return NewCourseOutlineTool(resolver, courses)
}

func TestOutlineToolRequiresCourseName(t *testing.T) {
	tool := newOutlineFixture(t)

	got, err := tool.Execute(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Outline error: 'course_name' parameter is required" {
		t.Errorf("result = %q", got)
	}
}

func TestOutlineToolUnknownCourse(t *testing.T) {
	tool := newOutlineFixture(t)

	got, err := tool.Execute(context.Background(), map[string]interface{}{
		"course_name": "pottery",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "No course found matching 'pottery'." {
		t.Errorf("result = %q", got)
	}
}

func TestOutlineToolFormatsOutline(t *testing.T) {
	tool := newOutlineFixture(t)

	got, err := tool.Execute(context.Background(), map[string]interface{}{
		"course_name": "mcp for beginners",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, line := range []string{
		"Course: MCP for Beginners",
		"Instructor: Grace Hopper",
		"Course Link: https://example.com/mcp",
		"Total Lessons: 2",
		"  Lesson 0: Welcome",
		"  Lesson 1: Servers and Clients",
	} {
		if !strings.Contains(got, line) {
			t.Errorf("outline missing %q:\n%s", line, got)
		}
	}

	sources := tool.LastSources()
	if len(sources) != 1 || sources[0] != "[MCP for Beginners](https://example.com/mcp)" {
		t.Errorf("sources = %v", sources)
	}
}
