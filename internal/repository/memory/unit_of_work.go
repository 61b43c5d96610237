package memory

import (
	"context"

	"ai-coursechat-be/internal/repository/contract"
	"ai-coursechat-be/internal/repository/unitofwork"
)

// RepositoryFactory wires the in-process stores behind the same unit-of-work
// contract the gorm implementation satisfies. There is no real transaction;
// Begin/Commit/Rollback are no-ops over the shared maps, which is acceptable
// for tests and single-process DB-less runs.
type RepositoryFactory struct {
	courses *CourseRepository
	chunks  *ChunkRepository
}

func NewRepositoryFactory(courses *CourseRepository, chunks *ChunkRepository) *RepositoryFactory {
	return &RepositoryFactory{
		courses: courses,
		chunks:  chunks,
	}
}

var _ unitofwork.RepositoryFactory = &RepositoryFactory{}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &unitOfWork{factory: f}
}

type unitOfWork struct {
	factory *RepositoryFactory
}

func (u *unitOfWork) Begin(ctx context.Context) error { return nil }
func (u *unitOfWork) Commit() error                   { return nil }
func (u *unitOfWork) Rollback() error                 { return nil }

func (u *unitOfWork) CourseRepository() contract.CourseRepository {
	return u.factory.courses
}

func (u *unitOfWork) ChunkRepository() contract.ChunkRepository {
	return u.factory.chunks
}
