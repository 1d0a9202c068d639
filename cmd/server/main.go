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

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/formiguinhas/ledger/internal/config"
	"github.com/formiguinhas/ledger/internal/handler"
	"github.com/formiguinhas/ledger/internal/ledger"
	"github.com/formiguinhas/ledger/internal/store"
	customError "github.com/formiguinhas/ledger/pkg/errors"
	"github.com/formiguinhas/ledger/pkg/logger"
	"github.com/formiguinhas/ledger/pkg/response"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(logger.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zlog.Sync()

	// Initialize the durable store
	st, err := store.Open(cfg)
	if err != nil {
		zlog.Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	// Initialize ledgers and load persisted snapshots
	supporterLedger := ledger.NewSupporterLedger(st, cfg, zlog)
	eventLedger := ledger.NewEventLedger(st, zlog)

	loadLedgers(supporterLedger, eventLedger, zlog)

	// Initialize handlers
	supporterHandler := handler.NewSupporterHandler(supporterLedger)
	eventHandler := handler.NewEventHandler(eventLedger)
	healthHandler := handler.NewHealthHandler(st)

	// Setup routes
	router := setupRoutes(supporterHandler, eventHandler, healthHandler, zlog)

	// Start server
	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		zlog.Info("server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutting down server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server exited")
}

// loadLedgers reads both snapshots at startup. A corrupt snapshot is not
// fatal: the ledger starts empty and the failure is logged for the user.
func loadLedgers(supporters *ledger.SupporterLedger, events *ledger.EventLedger, zlog *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := supporters.Load(ctx); err != nil {
		if customError.IsCode(err, customError.ErrCodeStorageRead) {
			zlog.Warn("supporter snapshot unreadable, starting empty", zap.Error(err))
		} else {
			zlog.Fatal("failed to load supporters", zap.Error(err))
		}
	}

	if err := events.Load(ctx); err != nil {
		if customError.IsCode(err, customError.ErrCodeStorageRead) {
			zlog.Warn("event snapshot unreadable, starting empty", zap.Error(err))
		} else {
			zlog.Fatal("failed to load events", zap.Error(err))
		}
	}
}

func setupRoutes(
	supporterHandler *handler.SupporterHandler,
	eventHandler *handler.EventHandler,
	healthHandler *handler.HealthHandler,
	zlog *zap.Logger,
) *mux.Router {
	router := mux.NewRouter()
	router.Use(response.LoggingMiddleware(zlog))
	router.Use(response.CORSMiddleware)

	// Health check
	router.HandleFunc("/health", healthHandler.Health).Methods("GET")
	router.HandleFunc("/health/ready", healthHandler.Ready).Methods("GET")

	// API routes
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/supporters", supporterHandler.List).Methods("GET")
	api.HandleFunc("/supporters", supporterHandler.Create).Methods("POST")
	api.HandleFunc("/supporters/summary", supporterHandler.Summary).Methods("GET")
	api.HandleFunc("/supporters/reset", supporterHandler.Reset).Methods("POST")
	api.HandleFunc("/supporters/{id}", supporterHandler.Delete).Methods("DELETE")
	api.HandleFunc("/supporters/{id}/payment", supporterHandler.RegisterPayment).Methods("POST")
	api.HandleFunc("/supporters/{id}/payment", supporterHandler.RemovePayment).Methods("DELETE")

	api.HandleFunc("/events", eventHandler.List).Methods("GET")
	api.HandleFunc("/events", eventHandler.Create).Methods("POST")
	api.HandleFunc("/events/{id}", eventHandler.Update).Methods("PUT")
	api.HandleFunc("/events/{id}", eventHandler.Delete).Methods("DELETE")
	api.HandleFunc("/events/{id}/totals", eventHandler.Totals).Methods("GET")

	return router
}
