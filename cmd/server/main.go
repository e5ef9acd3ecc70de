/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the reservation engine server: configuration,
  store selection, dependency wiring, graceful shutdown.

CONFIGURATION:
  A .env file is loaded if present; flags override environment values.

  PORT / -port          HTTP server port (default: 8080)
  STORE / -store        "jsonfile" or "sqlite" (default: jsonfile)
  DATA_DIR / -data      Directory for JSON collections (default: ./data)
  SQLITE_PATH / -db     SQLite database path (default: ./reservations.db)
  LOG_LEVEL / -log      logrus level (default: info)

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM: stop accepting connections, wait for active requests
  (30s timeout), close the store, exit.

SEE ALSO:
  - api/server.go: Router configuration
  - store/jsonfile, store/sqlite: Backends
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

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/warp/reservation-engine/api"
	"github.com/warp/reservation-engine/booking"
	"github.com/warp/reservation-engine/store/jsonfile"
	"github.com/warp/reservation-engine/store/sqlite"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	// .env is optional; flags below override it.
	_ = godotenv.Load()

	port := flag.String("port", envOr("PORT", "8080"), "HTTP server port")
	storeKind := flag.String("store", envOr("STORE", "jsonfile"), "storage backend: jsonfile or sqlite")
	dataDir := flag.String("data", envOr("DATA_DIR", "./data"), "directory for JSON collections")
	dbPath := flag.String("db", envOr("SQLITE_PATH", "./reservations.db"), "SQLite database path")
	logLevel := flag.String("log", envOr("LOG_LEVEL", "info"), "log level")
	flag.Parse()

	log := logrus.New()
	if level, err := logrus.ParseLevel(*logLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", *logLevel).Warn("unknown log level; using info")
	}

	// Select the record store backend.
	var store booking.RecordStore
	switch *storeKind {
	case "jsonfile":
		store = jsonfile.New(*dataDir, log)
	case "sqlite":
		s, err := sqlite.New(*dbPath, log)
		if err != nil {
			log.WithError(err).Fatal("failed to open sqlite store")
		}
		defer s.Close()
		store = s
	default:
		log.WithField("store", *storeKind).Fatal("unknown store backend")
	}

	svc := booking.NewService(store, log)
	handler := api.NewHandler(svc, api.NewMetrics())
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.WithFields(logrus.Fields{
			"addr":  server.Addr,
			"store": *storeKind,
		}).Info("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}
