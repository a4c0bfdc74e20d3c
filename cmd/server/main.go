package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"user-messaging-backend/internal/config"
	"user-messaging-backend/internal/database"
	"user-messaging-backend/internal/handler"
	"user-messaging-backend/internal/mailer"
	"user-messaging-backend/internal/middleware"
	"user-messaging-backend/internal/repository"
	"user-messaging-backend/internal/service"
	"user-messaging-backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Load configuration; a missing signing secret or missing OAuth
	// credentials abort startup here, never at request time
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	log.Println("Configuration loaded successfully")

	// 2. Initialize database connection
	db := database.Connect(cfg)

	// 3. Initialize repositories
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewRefreshTokenRepo(db)
	messageRepo := repository.NewMessageRepo(db)
	auditRepo := repository.NewAuditRepo(db)

	// 4. Initialize token signing and mail transport
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	mail := mailer.New(cfg.Mail)
	if !mail.Enabled() {
		log.Println("Warning: EMAIL_HOST not set, reset emails will not be delivered")
	}

	// 5. Initialize services
	authService := service.NewAuthService(userRepo, tokenRepo, auditRepo, jwtManager, mail, service.AuthConfig{
		RefreshTokenExpiry: cfg.JWT.RefreshTokenExpiry,
		ResetTokenExpiry:   cfg.JWT.ResetTokenExpiry,
	})
	userService := service.NewUserService(userRepo)
	messageService := service.NewMessageService(messageRepo)
	cleanupService := service.NewCleanupService(tokenRepo, userRepo, 15*time.Minute)

	// 6. Start token cleanup worker in goroutine
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cleanupService.Start(ctx)

	// 7. Setup Gin mode
	gin.SetMode(cfg.Server.GinMode)

	// 8. Setup Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS(cfg))

	// 9. Register handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	messageHandler := handler.NewMessageHandler(messageService)
	oauthHandler := handler.NewOAuthHandler(authService, cfg.OAuth)

	// 10. Define routes
	r.GET("/health", func(c *gin.Context) {
		utils.SuccessResponse(c, http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "user-messaging-backend",
		})
	})

	users := r.Group("/api/v1/users")
	{
		users.POST("/signup", authHandler.Signup)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh-token", authHandler.Refresh)
		users.POST("/logout", authHandler.Logout)
		users.POST("/forgot-password", authHandler.ForgotPassword)
		users.PUT("/reset-password/:token", authHandler.ResetPassword)

		users.GET("/auth/google", oauthHandler.GoogleLogin)
		users.GET("/auth/google/callback", oauthHandler.GoogleCallback)

		authed := users.Group("")
		authed.Use(middleware.Auth(jwtManager))
		{
			authed.GET("/profile", userHandler.Profile)
			authed.PUT("/profile", userHandler.UpdateProfile)
			authed.PUT("/change-password", authHandler.ChangePassword)
			authed.POST("/upload-profile", userHandler.UploadProfileImage)

			// Admin-only routes
			authed.GET("/admin", middleware.RequireRole("admin"), func(c *gin.Context) {
				utils.MessageResponse(c, http.StatusOK, "Welcome Admin!")
			})
			authed.GET("/all", middleware.RequireRole("admin"), userHandler.AllUsers)
		}
	}

	messages := r.Group("/api/v1/messages")
	messages.Use(middleware.Auth(jwtManager))
	{
		messages.POST("/send", messageHandler.Send)
		messages.GET("/my-messages", messageHandler.MyMessages)
		messages.PUT("/mark-read/:id", messageHandler.MarkRead)
		messages.DELETE("/delete/:messageId", messageHandler.Delete)
	}

	// 11. Setup graceful shutdown
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		if err := r.Run(":" + cfg.Server.Port); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Cancel cleanup worker context
	cancel()
	log.Println("Server exited")
}
