package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "user-admin-backend/docs"
	"user-admin-backend/internal/auth"
	"user-admin-backend/internal/common/config"
	"user-admin-backend/internal/common/logger"
	"user-admin-backend/internal/common/middleware"
	"user-admin-backend/internal/common/response"
	userhttp "user-admin-backend/internal/features/user/delivery/http"
	userredis "user-admin-backend/internal/features/user/repository/redis"
	"user-admin-backend/internal/features/user/service"
	"user-admin-backend/internal/platform/mailer"
	redisplatform "user-admin-backend/internal/platform/redis"
)

// @title User Admin Backend API
// @version 1.0
// @description REST backend for user registration, login, profile management, OTP password reset and admin user management.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("config load: %v", err))
	}

	logger.Init("user-admin-backend", cfg.Debug)
	response.Debug = cfg.Debug

	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	rdb, err := redisplatform.Open(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Redis open failed")
	}
	defer rdb.Close()

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)
	sender := mailer.NewSMTPSender(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)

	userRepo := userredis.NewUserRepository(rdb)
	userSvc := service.NewUserService(userRepo, tokens, sender, cfg.OTP.TTL, cfg.OTP.RevealAccount)

	if err := userSvc.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password, cfg.Admin.Phone); err != nil {
		logger.Fatal().Err(err).Msg("Admin seeding failed")
	}

	router := gin.New()
	router.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Server.Origin},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/api/v1")
	userhttp.NewUserHandler(userSvc, tokens).RegisterRoutes(api)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}
	logger.Info().Msg("Server stopped")
}
