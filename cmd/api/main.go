package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/georgemunganga/corazonehives/internal/config"
	"github.com/georgemunganga/corazonehives/internal/modules/auth"
	"github.com/georgemunganga/corazonehives/internal/modules/cart"
	"github.com/georgemunganga/corazonehives/internal/modules/catalog"
	"github.com/georgemunganga/corazonehives/internal/modules/delivery"
	"github.com/georgemunganga/corazonehives/internal/modules/media"
	"github.com/georgemunganga/corazonehives/internal/modules/order"
	"github.com/georgemunganga/corazonehives/internal/session"
	"github.com/georgemunganga/corazonehives/internal/storage"
)

func main() {
	bootLog := config.NewLogger("info", "json")
	cfg, err := config.Load(bootLog)
	if err != nil {
		bootLog.Fatalf("Failed to load configuration: %v", err)
	}
	logger := config.NewLogger(cfg.LogLevel, cfg.LogFormat)

	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	logger.Info("Successfully connected to the database")

	// ── Session storage ─────────────────────────────────────
	var local storage.Local
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			logger.Fatalf("Failed to connect to redis: %v", err)
		}
		logger.WithField("addr", cfg.RedisAddr).Info("Session storage backed by redis")
		local = storage.NewRedis(rdb, cfg.SessionTTL)
	} else {
		logger.Warn("REDIS_ADDR not set, session storage is in-memory and lost on restart")
		local = storage.NewMemory()
	}

	destination, err := order.NormalizeDestination(cfg.WhatsAppNumber)
	if err != nil {
		logger.Fatalf("Invalid WHATSAPP_NUMBER: %v", err)
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	// ── Admin ───────────────────────────────────────────────
	authService := auth.NewService(auth.NewPostgresRepository(db), cfg.JWTSecret, cfg.JWTTTL, logger)
	if cfg.AdminEmail != "" && cfg.AdminPassword != "" {
		if err := authService.EnsureAdmin(context.Background(), cfg.AdminEmail, cfg.AdminPassword, "Admin"); err != nil {
			logger.Fatalf("Failed to seed admin account: %v", err)
		}
	}
	auth.NewHandler(authService, logger).RegisterRoutes(router)

	// ── Catalog ─────────────────────────────────────────────
	catalogRepo := catalog.NewPostgresRepository(db, logger)
	catalogService := catalog.NewService(catalogRepo, logger)
	catalogHandler := catalog.NewHandler(catalogService, logger)
	catalogHandler.RegisterRoutes(router)

	mediaHandler := media.NewHandler(media.NewService(cfg.UploadDir, cfg.UploadURLPrefix, logger), logger)

	router.Route("/api/v1/admin", func(r chi.Router) {
		r.Use(auth.Middleware(authService))
		catalogHandler.RegisterAdminRoutes(r)
		mediaHandler.RegisterRoutes(r)
	})

	// ── Session: cart, delivery, checkout ───────────────────
	router.Group(func(r chi.Router) {
		r.Use(session.Middleware(cfg.SessionTTL))
		cart.NewHandler(catalogService, local, logger).RegisterRoutes(r)
		delivery.NewHandler(local, cfg.DeliveryAreas, logger).RegisterRoutes(r)

		orderService := order.NewService(order.Policy{
			StoreName:   cfg.StoreName,
			Destination: destination,
			TaxRate:     cfg.TaxRate,
		}, logger)
		order.NewHandler(orderService, local, logger).RegisterRoutes(r)
	})

	router.Handle(cfg.UploadURLPrefix+"/*",
		http.StripPrefix(cfg.UploadURLPrefix, http.FileServer(http.Dir(cfg.UploadDir))))
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	// ── Start Server ────────────────────────────────────────
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("%s API server starting on :%s", cfg.StoreName, cfg.Port)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Fatalf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown: %v", err)
	}
	logger.Info("Server stopped")
}

func requestLogger(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.WithFields(logrus.Fields{
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"duration":   time.Since(start).String(),
				"request_id": middleware.GetReqID(r.Context()),
			}).Info("Request handled")
		})
	}
}
