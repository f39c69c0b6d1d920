package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	"voicedetect/config"
	"voicedetect/internal/app"
)

// @title Voice Detection API
// @version 1.0
// @description Classifies short MP3 voice clips as AI-generated or human speech
// @host localhost:8080
// @BasePath /
func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()
	log.Printf("Config:")
	log.Printf("  API key header:   %s", cfg.APIKeyHeader)
	log.Printf("  Temp dir:         %s", cfg.TempDir)
	log.Printf("  Max request size: %d bytes", cfg.MaxRequestBytes)
	log.Printf("  Analysis timeout: %s", cfg.AnalysisTimeout)

	application, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to initialize:", err)
	}
	defer application.Close()

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: application.Handler,
	}

	go func() {
		log.Printf("Server starting on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /api/voice-detection")
		log.Println("  GET  /api/stats")
		log.Println("  GET  /health")
		log.Println("  GET  /swagger/doc.json")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
