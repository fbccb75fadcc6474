package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"guardops/internal/domain/attendance"
	"guardops/internal/domain/compliance"
	"guardops/internal/domain/geofence"
	"guardops/internal/domain/guard"
	"guardops/internal/domain/incident"
	"guardops/internal/domain/payroll"
	"guardops/internal/platform/config"
	"guardops/internal/platform/db"
	"guardops/internal/platform/jobs"
	"guardops/internal/platform/metrics"
	"guardops/internal/transport/http/api"
	attendancehandler "guardops/internal/transport/http/handlers/attendance"
	compliancehandler "guardops/internal/transport/http/handlers/compliance"
	geofencehandler "guardops/internal/transport/http/handlers/geofence"
	guardhandler "guardops/internal/transport/http/handlers/guards"
	incidenthandler "guardops/internal/transport/http/handlers/incidents"
	payrollhandler "guardops/internal/transport/http/handlers/payroll"
	"guardops/internal/transport/http/middleware"
)

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, "migrations"); err != nil {
			log.Fatalf("migrations failed: %v", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool); err != nil {
			log.Fatalf("seed failed: %v", err)
		}
	}

	collector := metrics.New()

	guardStore := guard.NewStore(pool)
	attendanceStore := attendance.NewStore(pool)
	payrollService := payroll.NewService(
		payroll.NewStore(pool),
		attendanceStore,
		payroll.RatesFromConfig(cfg.Payroll),
		collector,
	)
	complianceService := compliance.NewService(compliance.NewStore(pool), cfg.Compliance)
	geofenceStore := geofence.NewStore(pool)
	incidentStore := incident.NewStore(pool)

	jobsService := jobs.New(pool, cfg, complianceService, guardStore)
	jobsService.Start(ctx)

	limiter := middleware.NewRateLimiter(cfg.RateLimitPerMin, time.Minute)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(collector))
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.SecureHeaders)

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/internal/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(limiter.Middleware)
		r.Use(middleware.Auth(cfg.JWTSecret))

		guardhandler.NewHandler(guardStore).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceStore).RegisterRoutes(r)
		payrollhandler.NewHandler(payrollService).RegisterRoutes(r)
		compliancehandler.NewHandler(complianceService).RegisterRoutes(r)
		geofencehandler.NewHandler(geofenceStore, collector).RegisterRoutes(r)
		incidenthandler.NewHandler(incidentStore).RegisterRoutes(r)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	log.Printf("guardops server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
