package usecase

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"lms-backend/internal/apperror"
	"lms-backend/internal/course/domain"
	"lms-backend/internal/course/dto"
	"lms-backend/internal/course/repository"
	userdomain "lms-backend/internal/user/domain"
	"lms-backend/pkg/mailer"
	"lms-backend/pkg/uploader"
)

const thumbnailFolder = "courses"

type courseUsecase struct {
	courses repository.CourseRepository
	cache   repository.Cache
	mail    mailer.Mailer
	files   uploader.Uploader
}

// NewCourseUsecase creates a new instance of courseUsecase
func NewCourseUsecase(courses repository.CourseRepository, cache repository.Cache, mail mailer.Mailer, files uploader.Uploader) CourseUsecase {
	return &courseUsecase{
		courses: courses,
		cache:   cache,
		mail:    mail,
		files:   files,
	}
}

func (u *courseUsecase) Create(ctx context.Context, req dto.CreateCourseRequest) (*domain.Course, error) {
	course := &domain.Course{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		EstimatedPrice: req.EstimatedPrice,
		Tags:           req.Tags,
		Level:          req.Level,
		DemoURL:        req.DemoURL,
		Benefits:       req.Benefits,
		Prerequisites:  req.Prerequisites,
		Contents:       buildContents(req.Contents),
	}

	if req.Thumbnail != "" {
		asset, err := u.files.Upload(ctx, req.Thumbnail, thumbnailFolder)
		if err != nil {
			return nil, err
		}
		course.Thumbnail = asset
	}

	if err := u.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	if err := u.cache.Invalidate(ctx, course.ID); err != nil {
		return nil, err
	}
	return course, nil
}

func (u *courseUsecase) Edit(ctx context.Context, courseID string, req dto.EditCourseRequest) (*domain.Course, error) {
	course, err := u.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperror.NotFound("course")
	}

	if req.Thumbnail != "" {
		if course.Thumbnail.PublicID != "" {
			if err := u.files.Destroy(ctx, course.Thumbnail.PublicID); err != nil {
				return nil, err
			}
		}
		asset, err := u.files.Upload(ctx, req.Thumbnail, thumbnailFolder)
		if err != nil {
			return nil, err
		}
		course.Thumbnail = asset
	}

	if req.Name != "" {
		course.Name = req.Name
	}
	if req.Description != "" {
		course.Description = req.Description
	}
	if req.Price != 0 {
		course.Price = req.Price
	}
	if req.EstimatedPrice != 0 {
		course.EstimatedPrice = req.EstimatedPrice
	}
	if req.Tags != "" {
		course.Tags = req.Tags
	}
	if req.Level != "" {
		course.Level = req.Level
	}
	if req.DemoURL != "" {
		course.DemoURL = req.DemoURL
	}
	if req.Benefits != nil {
		course.Benefits = req.Benefits
	}
	if req.Prerequisites != nil {
		course.Prerequisites = req.Prerequisites
	}
	if req.Contents != nil {
		course.Contents = buildContents(req.Contents)
	}

	if err := u.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	// Drop the stale cache entries so the next read sees this write.
	if err := u.cache.Invalidate(ctx, course.ID); err != nil {
		return nil, err
	}
	return course, nil
}

// GetByID serves the projected course detail cache-aside: cache hit wins,
// a miss reads the document store and populates the cache.
func (u *courseUsecase) GetByID(ctx context.Context, courseID string) (*domain.Course, error) {
	cached, err := u.cache.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	course, err := u.courses.FindByIDProjected(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperror.NotFound("course")
	}

	if err := u.cache.SetCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (u *courseUsecase) GetAll(ctx context.Context) ([]domain.Course, error) {
	cached, err := u.cache.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return cached, nil
	}

	courses, err := u.courses.FindAllProjected(ctx)
	if err != nil {
		return nil, err
	}

	if err := u.cache.SetAll(ctx, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// GetByEnrolledUser returns the full, unprojected content. It always reads
// the document store; the cache only ever holds projected documents.
func (u *courseUsecase) GetByEnrolledUser(ctx context.Context, user userdomain.User, courseID string) ([]domain.Content, error) {
	if !user.EnrolledIn(courseID) {
		return nil, apperror.Forbidden("you are not eligible to access this course")
	}

	course, err := u.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperror.NotFound("course")
	}
	return course.Contents, nil
}

func (u *courseUsecase) AddQuestion(ctx context.Context, user userdomain.User, req dto.AddQuestionRequest) (*domain.Course, error) {
	// Reject malformed ids before touching the store.
	if !primitive.IsValidObjectID(req.ContentID) {
		return nil, apperror.BadRequest("invalid content id")
	}

	course, err := u.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperror.NotFound("course")
	}

	content := course.FindContent(req.ContentID)
	if content == nil {
		return nil, apperror.NotFound("content")
	}

	question := domain.Question{
		ID:        primitive.NewObjectID().Hex(),
		User:      user,
		Question:  req.Question,
		Replies:   []domain.Reply{},
		CreatedAt: time.Now(),
	}
	if err := u.courses.PushQuestion(ctx, course.ID, content.ID, question); err != nil {
		return nil, err
	}

	content.Questions = append(content.Questions, question)
	return course, nil
}

func (u *courseUsecase) AddAnswer(ctx context.Context, user userdomain.User, req dto.AddAnswerRequest) (*domain.Course, error) {
	if !primitive.IsValidObjectID(req.ContentID) {
		return nil, apperror.BadRequest("invalid content id")
	}

	course, err := u.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if course == nil {
		return nil, apperror.NotFound("course")
	}

	content := course.FindContent(req.ContentID)
	if content == nil {
		return nil, apperror.NotFound("content")
	}
	question := content.FindQuestion(req.QuestionID)
	if question == nil {
		return nil, apperror.NotFound("question")
	}

	reply := domain.Reply{
		ID:        primitive.NewObjectID().Hex(),
		User:      user,
		Answer:    req.Answer,
		CreatedAt: time.Now(),
	}
	if err := u.courses.PushReply(ctx, course.ID, content.ID, question.ID, reply); err != nil {
		return nil, err
	}
	question.Replies = append(question.Replies, reply)

	// Self-answers need no notification. For anyone else the mail is
	// best-effort: the reply is already persisted, so a send failure is
	// only logged.
	if user.ID != question.User.ID {
		mailData := struct {
			Name  string
			Title string
		}{Name: question.User.Name, Title: content.Title}
		if err := u.mail.Send(question.User.Email, "Question Answered", "question_reply", mailData); err != nil {
			log.Printf("failed to send answer notification to %s: %v", question.User.Email, err)
		}
	}

	return course, nil
}

func buildContents(inputs []dto.ContentInput) []domain.Content {
	contents := make([]domain.Content, 0, len(inputs))
	for _, in := range inputs {
		contents = append(contents, domain.Content{
			ID:           primitive.NewObjectID().Hex(),
			Title:        in.Title,
			Description:  in.Description,
			VideoURL:     in.VideoURL,
			VideoSection: in.VideoSection,
			VideoLength:  in.VideoLength,
			Links:        in.Links,
			Suggestion:   in.Suggestion,
			Questions:    []domain.Question{},
		})
	}
	return contents
}
