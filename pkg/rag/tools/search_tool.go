package tools

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/pkg/embedding"
	"ai-coursechat-be/pkg/llm"
	"ai-coursechat-be/pkg/rag/catalog"
)

const SearchToolName = "search_course_content"

// CourseSearchTool answers content questions: it resolves an optional course
// name filter, embeds the query, and returns ranked chunks from the content
// index formatted for the model, accumulating citation sources as it goes.
type CourseSearchTool struct {
	resolver   *catalog.Resolver
	courses    contract.CourseRepository
	chunks     contract.ChunkRepository
	provider   embedding.EmbeddingProvider
	maxResults int
	threshold  float64

	mu          sync.Mutex
	lastSources []string
}

func NewCourseSearchTool(
	resolver *catalog.Resolver,
	courses contract.CourseRepository,
	chunks contract.ChunkRepository,
	provider embedding.EmbeddingProvider,
	maxResults int,
	threshold float64,
) *CourseSearchTool {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &CourseSearchTool{
		resolver:   resolver,
		courses:    courses,
		chunks:     chunks,
		provider:   provider,
		maxResults: maxResults,
		threshold:  threshold,
	}
}

var _ Tool = &CourseSearchTool{}

func (t *CourseSearchTool) Definition() llm.ToolDefinition {
	return llm.ToolDefinition{
		Name:        SearchToolName,
		Description: "Search course materials with smart course name matching and lesson filtering",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What to search for in course content",
				},
				"course_name": map[string]interface{}{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
				"lesson_number": map[string]interface{}{
					"type":        "integer",
					"description": "Specific lesson number to search within (e.g. 1, 2, 3)",
				},
			},
			"required": []string{"query"},
		},
	}
}

func (t *CourseSearchTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return "Search error: 'query' parameter is required", nil
	}

	filter := contract.ChunkFilter{}

	if hint, ok := args["course_name"].(string); ok && hint != "" {
		title, resolved, err := t.resolver.ResolveCourse(ctx, hint)
		if err != nil {
			return "", err
		}
		if !resolved {
			return fmt.Sprintf("No course found matching '%s'.", hint), nil
		}
		filter.CourseTitle = title
	}

	if n, ok := numberArg(args["lesson_number"]); ok {
		filter.LessonNumber = &n
	}

	res, err := t.provider.Generate(query, embedding.TaskRetrievalQuery)
	if err != nil {
		return "", err
	}

	scored, err := t.chunks.SearchSimilarWithScore(ctx, res.Embedding.Values, t.maxResults, filter, t.threshold)
	if err != nil {
		return "", err
	}
	if len(scored) == 0 {
		return emptyResultMessage(filter), nil
	}

	return t.formatResults(ctx, scored), nil
}

func (t *CourseSearchTool) formatResults(ctx context.Context, scored []*contract.ScoredChunk) string {
	// Lesson links come from the catalog; fetch each course once.
	courseCache := make(map[string]*entity.Course)

	var blocks []string
	var sources []string
	seen := make(map[string]bool)

	for _, sc := range scored {
		chunk := sc.Chunk
		blocks = append(blocks, fmt.Sprintf("[%s - Lesson %d]\n%s", chunk.CourseTitle, chunk.LessonNumber, chunk.Document))

		label := fmt.Sprintf("%s - Lesson %d", chunk.CourseTitle, chunk.LessonNumber)
		if seen[label] {
			continue
		}
		seen[label] = true

		course, ok := courseCache[chunk.CourseTitle]
		if !ok {
			course, _ = t.courses.FindByTitle(ctx, chunk.CourseTitle)
			courseCache[chunk.CourseTitle] = course
		}

		var lessonLink, courseLink string
		if course != nil {
			lessonLink = course.LessonLink(chunk.LessonNumber)
			courseLink = course.CourseLink
		}
		sources = append(sources, formatSource(label, lessonLink, courseLink))
	}

	t.mu.Lock()
	t.lastSources = append(t.lastSources, sources...)
	t.mu.Unlock()

	return strings.Join(blocks, "\n\n")
}

func (t *CourseSearchTool) LastSources() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]string, len(t.lastSources))
	copy(out, t.lastSources)
	return out
}

func (t *CourseSearchTool) ResetSources() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastSources = nil
}

// formatSource renders a citation as a markdown link, preferring the lesson
// link, then the course link, else a plain label.
func formatSource(label, lessonLink, courseLink string) string {
	if lessonLink != "" {
		return fmt.Sprintf("[%s](%s)", label, lessonLink)
	}
	if courseLink != "" {
		return fmt.Sprintf("[%s](%s)", label, courseLink)
	}
	return label
}

func emptyResultMessage(filter contract.ChunkFilter) string {
	msg := "No relevant content found"
	if filter.CourseTitle != "" {
		msg += fmt.Sprintf(" in course '%s'", filter.CourseTitle)
	}
	if filter.LessonNumber != nil {
		msg += fmt.Sprintf(" in lesson %d", *filter.LessonNumber)
	}
	return msg + "."
}

// numberArg accepts the integer shapes JSON decoding produces.
func numberArg(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}
