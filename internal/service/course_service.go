package service

import (
	"context"
	"errors"
	"strings"

	"ai-coursechat-be/internal/dto"
	"ai-coursechat-be/internal/repository/specification"
	"ai-coursechat-be/internal/repository/unitofwork"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

type ICourseService interface {
	GetCourseStats(ctx context.Context) (*dto.CourseStats, error)
	GetLessonContent(ctx context.Context, courseTitle string, lessonNumber int) (*dto.LessonContent, error)
}

type courseService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewCourseService(uowFactory unitofwork.RepositoryFactory) ICourseService {
	return &courseService{
		uowFactory: uowFactory,
	}
}

func (s *courseService) GetCourseStats(ctx context.Context) (*dto.CourseStats, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	count, err := uow.CourseRepository().Count(ctx)
	if err != nil {
		return nil, err
	}
	titles, err := uow.CourseRepository().Titles(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.CourseStats{
		TotalCourses: count,
		CourseTitles: titles,
	}, nil
}

// GetLessonContent reassembles one lesson's stored text from the content
// index, in chunk order. It reads the catalog first so the response carries
// the lesson's title and link alongside the raw chunks.
func (s *courseService) GetLessonContent(ctx context.Context, courseTitle string, lessonNumber int) (*dto.LessonContent, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	course, err := uow.CourseRepository().FindByTitle(ctx, courseTitle)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, ErrCourseNotFound
	}

	chunks, err := uow.ChunkRepository().FindAll(ctx,
		specification.ByCourseTitle{CourseTitle: course.Title},
		specification.ByLessonNumber{LessonNumber: lessonNumber},
		specification.OrderByChunkIndex{},
	)
	if err != nil {
		return nil, err
	}
	if len(chunks) == 0 {
		return nil, ErrLessonNotFound
	}

	parts := make([]string, len(chunks))
	for i, c := range chunks {
		parts[i] = c.Document
	}

	return &dto.LessonContent{
		CourseTitle:  course.Title,
		LessonNumber: lessonNumber,
		LessonTitle:  course.LessonTitle(lessonNumber),
		LessonLink:   course.LessonLink(lessonNumber),
		ChunkCount:   len(chunks),
		Content:      strings.Join(parts, "\n\n"),
	}, nil
}
