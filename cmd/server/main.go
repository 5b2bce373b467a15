/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the seller-core server. Handles configuration,
  dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize the SQLite record store
  3. Build the identity resolver (JWT, or a fixed dev user)
  4. Wire repositories and the API handler
  5. Start the server with graceful shutdown

COMMAND-LINE FLAGS:
  -port      HTTP server port (default: 8080)
  -db        SQLite database path (default: seller.db)
             Use ":memory:" for an in-memory database
  -dev-user  Skip token auth and act as this seller id (development only)

ENVIRONMENT:
  AUTH_JWT_SECRET  Shared HMAC secret for session tokens. Required unless
                   -dev-user is set.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close the database connection
  4. Exit

SEE ALSO:
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/warp/seller-core/api"
	"github.com/warp/seller-core/catalog"
	"github.com/warp/seller-core/identity"
	"github.com/warp/seller-core/ledger"
	"github.com/warp/seller-core/record"
	"github.com/warp/seller-core/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "seller.db", "SQLite database path")
	devUser := flag.String("dev-user", "", "skip token auth and act as this seller id (dev only)")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Identity provider
	var provider identity.Provider
	if *devUser != "" {
		logger.Warn("running with a fixed dev identity; do not use in production",
			zap.String("user", *devUser))
		provider = identity.StaticSeller(identity.UserID(*devUser))
	} else {
		secret := os.Getenv("AUTH_JWT_SECRET")
		if secret == "" {
			logger.Fatal("AUTH_JWT_SECRET is required (or use -dev-user for development)")
		}
		provider = identity.NewJWTProvider([]byte(secret), nil)
	}
	resolver := identity.NewResolver(provider)

	// Record store
	db, err := sqlite.New(*dbPath)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	// Owner-scoped repositories
	ledgerRepo := record.NewRepository(ledger.Table, db.Ledger(), resolver, logger)
	productRepo := record.NewRepository(catalog.Table, db.Products(), resolver, logger)

	// HTTP
	handler := api.NewHandler(ledgerRepo, productRepo, resolver, logger)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", zap.Int("port", *port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
