package api

import (
	"github.com/gin-gonic/gin"

	courseUsecase "lms-backend/internal/course/usecase"
	userUsecase "lms-backend/internal/user/usecase"
	"lms-backend/pkg/config"
)

type Handler struct {
	authUsecase   userUsecase.AuthUsecase
	courseUsecase courseUsecase.CourseUsecase
	config        *config.Config
}

func NewHandler(authUc userUsecase.AuthUsecase, courseUc courseUsecase.CourseUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase:   authUc,
		courseUsecase: courseUc,
		config:        cfg,
	}
}

func (h *Handler) Start(addr string) error {
	if h.config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// CORS for the configured frontend origin
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" && origin == h.config.Origin {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		}
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.courseUsecase, h.config)

	return r.Run(addr)
}
