package main

import (
	"context"
	"log"

	api "lms-backend/cmd/api"
	courseRepo "lms-backend/internal/course/repository"
	courseUsecase "lms-backend/internal/course/usecase"
	"lms-backend/internal/session"
	userRepo "lms-backend/internal/user/repository"
	userUsecase "lms-backend/internal/user/usecase"
	"lms-backend/pkg/config"
	"lms-backend/pkg/database"
	"lms-backend/pkg/mailer"
	"lms-backend/pkg/token"
	"lms-backend/pkg/uploader"
)

func main() {
	// Load configuration
	cfg := config.Load()
	ctx := context.Background()

	// Initialize stores
	db, err := database.NewMongoConnection(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to mongo:", err)
	}
	redisClient, err := database.NewRedisConnection(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to redis:", err)
	}

	// Initialize infrastructure services
	mail, err := mailer.NewSMTPMailer(cfg)
	if err != nil {
		log.Fatal("Failed to initialize mailer:", err)
	}
	files, err := uploader.NewCloudinaryUploader(cfg)
	if err != nil {
		log.Fatal("Failed to initialize uploader:", err)
	}
	tokens := token.NewIssuer(cfg)
	sessions := session.NewRedisStore(redisClient, cfg.RefreshTokenExpiry)

	// Initialize repositories (dependency injection)
	users := userRepo.NewUserRepository(db)
	courses := courseRepo.NewCourseRepository(db)
	courseCache := courseRepo.NewRedisCache(redisClient)

	// Initialize use cases
	authUsecaseInstance := userUsecase.NewAuthUsecase(users, sessions, tokens, mail, files)
	courseUsecaseInstance := courseUsecase.NewCourseUsecase(courses, courseCache, mail, files)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, courseUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
