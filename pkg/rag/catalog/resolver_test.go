package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/memory"
	"ai-coursechat-be/pkg/embedding"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Generate(text, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	v, ok := f.vectors[text]
	if !ok {
		v = []float32{0, 0, 1}
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: v},
	}, nil
}

func seedCourses(t *testing.T, repo *memory.CourseRepository) {
	t.Helper()
	courses := []*entity.Course{
		{
			Id:               entity.CourseId("Building RAG Applications"),
			Title:            "Building RAG Applications",
			CatalogEmbedding: []float32{1, 0, 0},
			CreatedAt:        time.Now(),
		},
		{
			Id:               entity.CourseId("MCP for Beginners"),
			Title:            "MCP for Beginners",
			CatalogEmbedding: []float32{0, 1, 0},
			CreatedAt:        time.Now(),
		},
	}
	for _, c := range courses {
		if err := repo.Upsert(context.Background(), c); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
}

func TestResolveCourseEmptyHint(t *testing.T) {
	repo := memory.NewCourseRepository()
	r := NewResolver(repo, &fakeEmbedder{}, 0.35)

	_, ok, err := r.ResolveCourse(context.Background(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("empty hint should not resolve")
	}
}

func TestResolveCourseExactMatchSkipsEmbedding(t *testing.T) {
	repo := memory.NewCourseRepository()
	seedCourses(t, repo)

	// Embedding failure proves the exact-match path never calls it.
	emb := &fakeEmbedder{err: errors.New("provider down")}
	r := NewResolver(repo, emb, 0.35)

	title, ok, err := r.ResolveCourse(context.Background(), "building rag applications")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || title != "Building RAG Applications" {
		t.Errorf("resolved = (%q, %v)", title, ok)
	}
	if emb.calls != 0 {
		t.Errorf("embedding called %d times on exact match", emb.calls)
	}
}

func TestResolveCourseFuzzyMatch(t *testing.T) {
	repo := memory.NewCourseRepository()
	seedCourses(t, repo)

	emb := &fakeEmbedder{vectors: map[string][]float32{
		"rag stuff": {0.95, 0.05, 0},
	}}
	r := NewResolver(repo, emb, 0.35)

	title, ok, err := r.ResolveCourse(context.Background(), "rag stuff")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || title != "Building RAG Applications" {
		t.Errorf("resolved = (%q, %v)", title, ok)
	}
}

func TestResolveCourseBelowThreshold(t *testing.T) {
	repo := memory.NewCourseRepository()
	if err := repo.Upsert(context.Background(), &entity.Course{
		Id:               entity.CourseId("Building RAG Applications"),
		Title:            "Building RAG Applications",
		CatalogEmbedding: []float32{1, 0, 0},
	}); err != nil {
		t.Fatal(err)
	}

	emb := &fakeEmbedder{vectors: map[string][]float32{
		"knitting": {0, 0, 1},
	}}
	r := NewResolver(repo, emb, 0.35)

	title, ok, err := r.ResolveCourse(context.Background(), "knitting")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Errorf("unrelated hint resolved to %q", title)
	}
}

func TestResolveCourseEmptyCatalog(t *testing.T) {
	repo := memory.NewCourseRepository()
	r := NewResolver(repo, &fakeEmbedder{}, 0.35)

	_, ok, err := r.ResolveCourse(context.Background(), "anything")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Error("empty catalog should never resolve")
	}
}

func TestResolveCoursePropagatesProviderError(t *testing.T) {
	repo := memory.NewCourseRepository()
	seedCourses(t, repo)

	wantErr := errors.New("provider down")
	r := NewResolver(repo, &fakeEmbedder{err: wantErr}, 0.35)

	_, _, err := r.ResolveCourse(context.Background(), "no such title")
	if !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
