/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the worker portal server: configuration, SQLite
  store, worker directory, assistant client, router, graceful shutdown.

STARTUP SEQUENCE:
  1. Load configuration (env / .env, PORTAL_ prefix)
  2. Open SQLite store (seeds the worker directory on first run)
  3. Build the assistant service (Gemini-backed)
  4. Configure the HTTP router
  5. Start server with graceful shutdown

CONFIGURATION:
  PORTAL_PORT           HTTP port (default 8080)
  PORTAL_DBPATH         SQLite path (default portal.db, ":memory:" works)
  PORTAL_JWTSECRET      Session token signing key
  PORTAL_GEMINIAPIKEY   Assistant API key (empty: fallback replies only)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, drain for up to 30s,
  close the store, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pan-asia/worker-portal/api"
	"github.com/pan-asia/worker-portal/assistant"
	"github.com/pan-asia/worker-portal/config"
	"github.com/pan-asia/worker-portal/store/sqlite"
)

func main() {
	cfg := config.Load()

	// Initialize store
	st, err := sqlite.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer st.Close()

	// Assistant
	gemini := assistant.NewGeminiClient(cfg.GeminiAPIKey)
	gemini.Model = cfg.GeminiModel
	asst := assistant.NewService(gemini)

	// Session tokens
	tokens := &api.TokenAuthority{
		Issuer:     cfg.AppName,
		SigningKey: []byte(cfg.JWTSecret),
		Expiration: cfg.JWTExpiration,
	}

	// Handler (loads or seeds the worker directory)
	handler, err := api.NewHandler(st, asst, tokens)
	if err != nil {
		log.Fatalf("Failed to load worker directory: %v", err)
	}

	router := api.NewRouter(handler, cfg.CORSOrigins)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // assistant calls can be slow
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%d", cfg.Port)
		log.Printf("API available at http://localhost:%d/api", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
