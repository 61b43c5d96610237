package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/rag/catalog"
)

const OutlineToolName = "get_course_outline"

// CourseOutlineTool returns a course's full outline: title, link,
// instructor and the numbered lesson list. It reads only the catalog.
type CourseOutlineTool struct {
	resolver *catalog.Resolver
	courses  contract.CourseRepository

	mu          sync.Mutex
	lastSources []string
}

func NewCourseOutlineTool(resolver *catalog.Resolver, courses contract.CourseRepository) *CourseOutlineTool {
	return &CourseOutlineTool{
		resolver: resolver,
		courses:  courses,
	}
}

var _ Tool = &CourseOutlineTool{}

func (t *CourseOutlineTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        OutlineToolName,
		Description: "Get the complete outline of a course including title, course link, and all lessons with their numbers and titles",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"course_name": map[string]interface{}{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
			},
			"required": []string{"course_name"},
		},
	}
}

func (t *CourseOutlineTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	hint, _ := args["course_name"].(string)
	if strings.TrimSpace(hint) == "" {
		return "Outline error: 'course_name' parameter is required", nil
	}

	title, resolved, err := t.resolver.ResolveCourse(ctx, hint)
	if err != nil {
		return "", err
	}
	if !resolved {
		return fmt.Sprintf("No course found matching '%s'.", hint), nil
	}

	course, err := t.courses.FindByTitle(ctx, title)
	if err != nil {
		return "", err
	}
	if course == nil {
		return fmt.Sprintf("No course found matching '%s'.", hint), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", course.Title)
	if course.Instructor != "" {
		fmt.Fprintf(&b, "Instructor: %s\n", course.Instructor)
	}
	if course.CourseLink != "" {
		fmt.Fprintf(&b, "Course Link: %s\n", course.CourseLink)
	}
	fmt.Fprintf(&b, "Total Lessons: %d\n\nLessons:\n", len(course.Lessons))
	for _, l := range course.Lessons {
		fmt.Fprintf(&b, "  Lesson %d: %s\n", l.Number, l.Title)
	}

	source := course.Title
	if course.CourseLink != "" {
		source = fmt.Sprintf("[%s](%s)", course.Title, course.CourseLink)
	}
	t.mu.Lock()
	t.lastSources = append(t.lastSources, source)
	t.mu.Unlock()

	return strings.TrimRight(b.String(), "\n"), nil
}

func (t *CourseOutlineTool) LastSources() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lastSources))
	copy(out, t.lastSources)
	return out
}

func (t *CourseOutlineTool) ResetSources() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSources = nil
}
