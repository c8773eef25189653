package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"authors-api/config"
	"authors-api/handlers"
	"authors-api/logger"
	"authors-api/models"
	"authors-api/repositories"
	"authors-api/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(cfg); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Log.Sync()

	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("init database", zap.Error(err))
	}

	if err := ensureSuperuser(db, cfg); err != nil {
		logger.Log.Fatal("create superuser", zap.Error(err))
	}

	router := handlers.NewRouter(db, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Log.Info("server starting", zap.String("port", cfg.Port), zap.String("db_driver", cfg.DBDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("listen", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("shutdown", zap.Error(err))
	}
	logger.Log.Info("server stopped")
}

// ensureSuperuser creates the configured staff account unless the email is already registered.
func ensureSuperuser(db *gorm.DB, cfg *config.Config) error {
	if cfg.SuperuserEmail == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository(db)
	if _, err := userRepo.GetByEmail(services.NormalizeEmail(cfg.SuperuserEmail)); err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if cfg.SuperuserPassword == "" {
		return errors.New("SUPERUSER_PASSWORD must be set together with SUPERUSER_EMAIL")
	}

	authService := services.NewAuthService(userRepo, cfg.JWT())
	_, err := authService.CreateSuperuser(models.CreateUserParams{
		Email:     cfg.SuperuserEmail,
		FirstName: cfg.SuperuserFirstName,
		LastName:  cfg.SuperuserLastName,
		Password:  cfg.SuperuserPassword,
	})
	return err
}
