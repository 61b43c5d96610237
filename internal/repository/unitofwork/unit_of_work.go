package unitofwork

import (
	"context"

	"ai-coursechat-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CourseRepository() contract.CourseRepository
	ChunkRepository() contract.ChunkRepository
}
