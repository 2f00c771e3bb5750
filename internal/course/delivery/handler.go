package delivery

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lms-backend/internal/apperror"
	"lms-backend/internal/course/dto"
	"lms-backend/internal/course/usecase"
	userdelivery "lms-backend/internal/user/delivery"
)

type CourseHandler struct {
	courseUsecase usecase.CourseUsecase
}

func NewCourseHandler(courseUsecase usecase.CourseUsecase) *CourseHandler {
	return &CourseHandler{
		courseUsecase: courseUsecase,
	}
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	course, err := h.courseUsecase.Create(c.Request.Context(), req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"course":  course,
	})
}

func (h *CourseHandler) Edit(c *gin.Context) {
	var req dto.EditCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	course, err := h.courseUsecase.Edit(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"course":  course,
	})
}

func (h *CourseHandler) GetByID(c *gin.Context) {
	course, err := h.courseUsecase.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"course":  course,
	})
}

func (h *CourseHandler) GetAll(c *gin.Context) {
	courses, err := h.courseUsecase.GetAll(c.Request.Context())
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"courses": courses,
	})
}

// GetByEnrolledUser serves the full content of a course the requesting
// user is enrolled in.
func (h *CourseHandler) GetByEnrolledUser(c *gin.Context) {
	user, ok := userdelivery.CurrentUser(c)
	if !ok {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	content, err := h.courseUsecase.GetByEnrolledUser(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"content": content,
	})
}

func (h *CourseHandler) AddQuestion(c *gin.Context) {
	user, ok := userdelivery.CurrentUser(c)
	if !ok {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	var req dto.AddQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	course, err := h.courseUsecase.AddQuestion(c.Request.Context(), user, req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "question added successfully",
		"course":  course,
	})
}

func (h *CourseHandler) AddAnswer(c *gin.Context) {
	user, ok := userdelivery.CurrentUser(c)
	if !ok {
		apperror.Fail(c, apperror.Unauthorized("login first to access this resource"))
		return
	}

	var req dto.AddAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperror.Fail(c, apperror.BadRequest(err.Error()))
		return
	}

	course, err := h.courseUsecase.AddAnswer(c.Request.Context(), user, req)
	if err != nil {
		apperror.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "answer added successfully",
		"course":  course,
	})
}
