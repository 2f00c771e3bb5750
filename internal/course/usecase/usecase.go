package usecase

import (
	"context"

	"lms-backend/internal/course/domain"
	"lms-backend/internal/course/dto"
	userdomain "lms-backend/internal/user/domain"
)

// CourseUsecase covers course CRUD, the cache-aside read path and the
// append-only Q&A threads.
type CourseUsecase interface {
	Create(ctx context.Context, req dto.CreateCourseRequest) (*domain.Course, error)
	Edit(ctx context.Context, courseID string, req dto.EditCourseRequest) (*domain.Course, error)
	GetByID(ctx context.Context, courseID string) (*domain.Course, error)
	GetAll(ctx context.Context) ([]domain.Course, error)
	GetByEnrolledUser(ctx context.Context, user userdomain.User, courseID string) ([]domain.Content, error)
	AddQuestion(ctx context.Context, user userdomain.User, req dto.AddQuestionRequest) (*domain.Course, error)
	AddAnswer(ctx context.Context, user userdomain.User, req dto.AddAnswerRequest) (*domain.Course, error)
}
