package dto

import "lms-backend/internal/course/domain"

type ContentInput struct {
	Title        string        `json:"title" binding:"required"`
	Description  string        `json:"description"`
	VideoURL     string        `json:"videoUrl"`
	VideoSection string        `json:"videoSection"`
	VideoLength  int           `json:"videoLength"`
	Links        []domain.Link `json:"links"`
	Suggestion   string        `json:"suggestion"`
}

type CreateCourseRequest struct {
	Name           string           `json:"name" binding:"required"`
	Description    string           `json:"description" binding:"required"`
	Price          float64          `json:"price"`
	EstimatedPrice float64          `json:"estimatedPrice"`
	Thumbnail      string           `json:"thumbnail"`
	Tags           string           `json:"tags"`
	Level          string           `json:"level"`
	DemoURL        string           `json:"demoUrl"`
	Benefits       []domain.Benefit `json:"benefits"`
	Prerequisites  []domain.Benefit `json:"prerequisites"`
	Contents       []ContentInput   `json:"courseData"`
}

// EditCourseRequest carries partial updates; zero-valued fields are left
// untouched.
type EditCourseRequest struct {
	Name           string           `json:"name"`
	Description    string           `json:"description"`
	Price          float64          `json:"price"`
	EstimatedPrice float64          `json:"estimatedPrice"`
	Thumbnail      string           `json:"thumbnail"`
	Tags           string           `json:"tags"`
	Level          string           `json:"level"`
	DemoURL        string           `json:"demoUrl"`
	Benefits       []domain.Benefit `json:"benefits"`
	Prerequisites  []domain.Benefit `json:"prerequisites"`
	Contents       []ContentInput   `json:"courseData"`
}

type AddQuestionRequest struct {
	Question  string `json:"question" binding:"required"`
	CourseID  string `json:"courseId" binding:"required"`
	ContentID string `json:"contentId" binding:"required"`
}

type AddAnswerRequest struct {
	Answer     string `json:"answer" binding:"required"`
	CourseID   string `json:"courseId" binding:"required"`
	ContentID  string `json:"contentId" binding:"required"`
	QuestionID string `json:"questionId" binding:"required"`
}
