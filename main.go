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

	"blogicum/config"
	"blogicum/database"
	"blogicum/logger"
	"blogicum/routes"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Blogicum API
// @version 1.0
// @description Read-only access to the publicly visible posts of the Blogicum blog.

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /api/v1

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	sugar, err := logger.NewSugar(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer sugar.Sync()

	if cfg.IsProd() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg, sugar)
	if err != nil {
		sugar.Fatalw("Failed to connect to database", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		sugar.Fatalw("Failed to migrate database", "error", err)
	}

	r := routes.NewRouter(cfg, db, sugar, utils.NewRealClock())

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		sugar.Infow("Server starting", "port", cfg.Port, "base_path", cfg.BasePath, "env", cfg.Env)
		sugar.Infof("Swagger docs available at: http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Graceful shutdown failed", "error", err)
	}
}
