package rest

import (
	"net/http"
	"voicedetect/docs"
	"voicedetect/internal/service"
	"voicedetect/internal/transport/rest/handler"
	"voicedetect/internal/transport/rest/middleware"

	"github.com/gorilla/mux"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	DetectionService *service.DetectionService

	APIKeyHeader    string
	MaxRequestBytes int64
	AllowedOrigins  string
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	detectionHandler := handler.NewDetectionHandler(c.DetectionService, c.MaxRequestBytes)
	authMW := middleware.NewAuthMiddleware(c.AuthService, c.APIKeyHeader)

	// request ids wrap everything so CORS preflights are logged too
	r.Use(middleware.RequestID)
	r.Use(corsMiddleware(c.AllowedOrigins, c.APIKeyHeader))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// OpenAPI document
	r.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
	}).Methods("GET")

	// API routes (require API key)
	api := r.PathPrefix("/api").Subrouter()
	api.Use(authMW.RequireAPIKey)

	api.HandleFunc("/voice-detection", detectionHandler.Detect).Methods("POST", "OPTIONS")
	api.HandleFunc("/stats", detectionHandler.Stats).Methods("GET", "OPTIONS")

	return r
}

func corsMiddleware(allowedOrigins, apiKeyHeader string) mux.MiddlewareFunc {
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}
	if apiKeyHeader == "" {
		apiKeyHeader = middleware.DefaultAPIKeyHeader
	}
	allowedHeaders := "Content-Type, " + apiKeyHeader

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
			w.Header().Set("Access-Control-Expose-Headers", middleware.RequestIDHeader)

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
