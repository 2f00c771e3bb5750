package repository

import (
	"context"

	"lms-backend/internal/course/domain"
)

// CourseRepository is the document-store access layer for courses. Find
// methods return nil (or an empty slice) without error when nothing
// matches. The projected variants strip the heavy per-content fields served
// only to enrolled users.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	Update(ctx context.Context, course *domain.Course) error
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	FindByIDProjected(ctx context.Context, id string) (*domain.Course, error)
	FindAllProjected(ctx context.Context) ([]domain.Course, error)

	// PushQuestion and PushReply append inside the nested arrays with a
	// single atomic document update, so two concurrent appends both land.
	PushQuestion(ctx context.Context, courseID, contentID string, question domain.Question) error
	PushReply(ctx context.Context, courseID, contentID, questionID string, reply domain.Reply) error
}

// Cache is the cache-aside layer over the key-value store: one entry per
// course id plus a singleton all-courses entry. Get methods return nil
// without error on a miss. Entries have no TTL; Invalidate removes the
// course entry and the aggregate entry after a write.
type Cache interface {
	GetCourse(ctx context.Context, id string) (*domain.Course, error)
	SetCourse(ctx context.Context, course *domain.Course) error
	GetAll(ctx context.Context) ([]domain.Course, error)
	SetAll(ctx context.Context, courses []domain.Course) error
	Invalidate(ctx context.Context, id string) error
}
