package service

import (
	"context"
	"errors"
	"testing"

	"ai-coursechat-be/internal/entity"
	"ai-coursechat-be/internal/repository/memory"
)

func newCourseFixture(t *testing.T) ICourseService {
	t.Helper()
	ctx := context.Background()

	courses := memory.NewCourseRepository()
	chunks := memory.NewChunkRepository()

	course := &entity.Course{
		Id:    entity.CourseId("Lesson Content Course"),
		Title: "Lesson Content Course",
		Lessons: []entity.Lesson{
			{Number: 1, Title: "Getting Started", Link: "https://example.com/lesson-1"},
			{Number: 2, Title: "Going Deeper"},
		},
	}
	if err := courses.Upsert(ctx, course); err != nil {
		t.Fatal(err)
	}

	seed := []*entity.CourseChunk{
		{Id: entity.ChunkId(course.Title, 1, 1), Document: "second part", CourseTitle: course.Title, LessonNumber: 1, ChunkIndex: 1},
		{Id: entity.ChunkId(course.Title, 1, 0), Document: "first part", CourseTitle: course.Title, LessonNumber: 1, ChunkIndex: 0},
		{Id: entity.ChunkId(course.Title, 2, 0), Document: "deeper part", CourseTitle: course.Title, LessonNumber: 2, ChunkIndex: 0},
	}
	if err := chunks.CreateBulk(ctx, seed); err != nil {
		t.Fatal(err)
	}

	return NewCourseService(memory.NewRepositoryFactory(courses, chunks))
}

func TestGetLessonContentJoinsChunksInOrder(t *testing.T) {
	svc := newCourseFixture(t)

	res, err := svc.GetLessonContent(context.Background(), "lesson content course", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Content != "first part\n\nsecond part" {
		t.Errorf("content = %q, want chunks joined in index order", res.Content)
	}
	if res.ChunkCount != 2 {
		t.Errorf("chunk count = %d, want 2", res.ChunkCount)
	}
	if res.LessonTitle != "Getting Started" {
		t.Errorf("lesson title = %q", res.LessonTitle)
	}
	if res.LessonLink != "https://example.com/lesson-1" {
		t.Errorf("lesson link = %q", res.LessonLink)
	}
	if res.CourseTitle != "Lesson Content Course" {
		t.Errorf("course title = %q, want the catalog casing", res.CourseTitle)
	}
}

func TestGetLessonContentLinklessLesson(t *testing.T) {
	svc := newCourseFixture(t)

	res, err := svc.GetLessonContent(context.Background(), "Lesson Content Course", 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.LessonLink != "" {
		t.Errorf("lesson link = %q, want empty", res.LessonLink)
	}
	if res.Content != "deeper part" {
		t.Errorf("content = %q", res.Content)
	}
}

func TestGetLessonContentUnknownCourse(t *testing.T) {
	svc := newCourseFixture(t)

	_, err := svc.GetLessonContent(context.Background(), "No Such Course", 1)
	if !errors.Is(err, ErrCourseNotFound) {
		t.Errorf("err = %v, want ErrCourseNotFound", err)
	}
}

func TestGetLessonContentUnknownLesson(t *testing.T) {
	svc := newCourseFixture(t)

	_, err := svc.GetLessonContent(context.Background(), "Lesson Content Course", 99)
	if !errors.Is(err, ErrLessonNotFound) {
		t.Errorf("err = %v, want ErrLessonNotFound", err)
	}
}

func TestGetCourseStats(t *testing.T) {
	svc := newCourseFixture(t)

	stats, err := svc.GetCourseStats(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalCourses != 1 {
		t.Errorf("total courses = %d, want 1", stats.TotalCourses)
	}
	if len(stats.CourseTitles) != 1 || stats.CourseTitles[0] != "Lesson Content Course" {
		t.Errorf("titles = %v", stats.CourseTitles)
	}
}
