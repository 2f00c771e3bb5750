package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lms-backend/internal/apperror"
	coursedelivery "lms-backend/internal/course/delivery"
	courseUsecase "lms-backend/internal/course/usecase"
	"lms-backend/internal/user/delivery"
	userUsecase "lms-backend/internal/user/usecase"
	"lms-backend/pkg/config"
)

func SetupRoutes(r *gin.Engine, authUsecase userUsecase.AuthUsecase, courseUsecase courseUsecase.CourseUsecase, cfg *config.Config) {
	authHandler := delivery.NewAuthHandler(authUsecase, cfg)
	courseHandler := coursedelivery.NewCourseHandler(courseUsecase)

	authenticated := delivery.AuthMiddleware(authUsecase)
	adminOnly := delivery.RoleMiddleware("admin")

	api := r.Group("/api/v1")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Account lifecycle
		api.POST("/registration", authHandler.Register)
		api.POST("/activate_user", authHandler.Activate)
		api.POST("/login_user", authHandler.Login)
		api.POST("/social_auth", authHandler.SocialAuth)
		api.POST("/logout_user", authenticated, authHandler.Logout)
		api.GET("/refresh_token", authHandler.Refresh)
		api.GET("/me", authenticated, authHandler.Me)
		api.POST("/update_user_info", authenticated, authHandler.UpdateInfo)
		api.POST("/update_user_password", authenticated, authHandler.UpdatePassword)
		api.POST("/update_user_avatar", authenticated, authHandler.UpdateAvatar)

		// Courses
		api.POST("/create_course", authenticated, adminOnly, courseHandler.Create)
		api.POST("/edit_course/:id", authenticated, adminOnly, courseHandler.Edit)
		api.GET("/get_course/:id", courseHandler.GetByID)
		api.GET("/get_all_courses", courseHandler.GetAll)
		api.POST("/set_user_course/:id", authenticated, courseHandler.GetByEnrolledUser)
		api.PUT("/add_question", authenticated, courseHandler.AddQuestion)
		api.POST("/add_answer", authenticated, courseHandler.AddAnswer)
	}

	// Everything else gets the generic envelope, never a stack trace.
	r.NoRoute(func(c *gin.Context) {
		apperror.Fail(c, apperror.NotFound("route"))
	})
}
