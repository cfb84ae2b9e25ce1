package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"github.com/notelab/notelab-api/auth"
	"github.com/notelab/notelab-api/config"
	"github.com/notelab/notelab-api/enrich"
	"github.com/notelab/notelab-api/genai"
	"github.com/notelab/notelab-api/handlers"
	"github.com/notelab/notelab-api/middleware"
	"github.com/notelab/notelab-api/store"
)

func init() {
	// Load .env file if not in production environment
	if os.Getenv("RAILWAY_ENVIRONMENT_NAME") == "" {
		err := godotenv.Load()
		if err != nil {
			log.Printf("Warning: .env file not found, environment variables might not be loaded: %v", err)
		}
	}
}

func main() {
	cfg := config.Load()

	db, err := config.ConnectDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: failed to connect database: %v", err)
	}

	st := store.New(db)
	aiClient := genai.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
	enricher := enrich.NewService(st, aiClient)

	noteHandler := &handlers.NoteHandler{Store: st}
	aiHandler := &handlers.AIHandler{Service: enricher}

	mux := http.NewServeMux()

	// Notes
	mux.HandleFunc("GET /api/notes", middleware.SyncUser(st, noteHandler.ListNotes))
	mux.HandleFunc("GET /api/notes/search", middleware.SyncUser(st, noteHandler.SearchNotes))
	mux.HandleFunc("GET /api/notes/{noteID}", middleware.SyncUser(st, noteHandler.GetNote))
	mux.HandleFunc("POST /api/notes", middleware.SyncUser(st, noteHandler.CreateNote))
	mux.HandleFunc("PUT /api/notes/{noteID}", middleware.SyncUser(st, noteHandler.UpdateNote))
	mux.HandleFunc("DELETE /api/notes/{noteID}", middleware.SyncUser(st, noteHandler.DeleteNote))

	// AI enrichment
	mux.HandleFunc("POST /api/ai/summary", middleware.SyncUser(st, aiHandler.Summarize))
	mux.HandleFunc("POST /api/ai/tags", middleware.SyncUser(st, aiHandler.GenerateTags))

	// Profile
	mux.HandleFunc("GET /api/me", middleware.SyncUser(st, handlers.Me))

	// Health
	mux.HandleFunc("GET /health", handlers.Health)

	// Identity: Auth0 when a tenant is configured, local session cookies
	// otherwise.
	var identityMiddleware func(http.Handler) http.Handler
	if cfg.Auth0Domain != "" {
		identityMiddleware, err = middleware.EnsureValidToken(cfg.Auth0Domain, cfg.Auth0Audience)
		if err != nil {
			log.Fatalf("main: failed to set up token validation: %v", err)
		}
	} else {
		if cfg.JWTSecretKey == "" {
			log.Fatal("main: JWT_SECRET_KEY must be set when AUTH0_DOMAIN is not")
		}
		log.Printf("main: AUTH0_DOMAIN not set, using local session tokens")
		identityMiddleware = auth.Middleware(cfg.JWTSecretKey)

		devTokens := &handlers.DevTokenHandler{Secret: cfg.JWTSecretKey}
		mux.HandleFunc("POST /auth/token", devTokens.IssueToken)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(identityMiddleware(mux))

	server := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: corsHandler,
	}

	go func() {
		log.Printf("main: listening on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("main: server failed: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	log.Printf("main: shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("main: graceful shutdown failed: %v", err)
	}
}
