package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/config"
	todohttp "github.com/KarpovAlexandrGo/todo-service/internal/controller/http"
	"github.com/KarpovAlexandrGo/todo-service/internal/metrics"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo/postgres"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo/redis"
	"github.com/KarpovAlexandrGo/todo-service/internal/repo/sqlite"
	"github.com/KarpovAlexandrGo/todo-service/internal/usecase"
	"github.com/KarpovAlexandrGo/todo-service/pkg/clock"
	"github.com/KarpovAlexandrGo/todo-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

type App struct {
	Server  *http.Server
	wg      sync.WaitGroup
	cfg     *config.Config
	closers []func() error
}

func NewApp(cfg *config.Config) (*App, error) {
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg}

	backend, err := a.initStorage(context.Background())
	if err != nil {
		a.Close()
		return nil, err
	}

	if cfg.CacheEnabled {
		backend, err = a.initCache(backend)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	a.Server = &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           NewRouter(NewUseCaseFactory(backend), m),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return a, nil
}

func (a *App) initStorage(ctx context.Context) (repo.Backend, error) {
	switch a.cfg.StorageDriver {
	case config.DriverPostgres:
		pool, err := postgres.Connect(ctx, a.cfg.PostgresDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() error {
			pool.Close()
			return nil
		})
		if a.cfg.MigrateOnStart {
			if err := postgres.Migrate(ctx, pool); err != nil {
				return nil, err
			}
		}
		return postgres.NewBackend(pool, a.cfg.QueryTimeout), nil

	case config.DriverSQLite:
		b, err := sqlite.Open(ctx, a.cfg.SQLitePath, a.cfg.QueryTimeout)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, b.Close)
		return b, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", a.cfg.StorageDriver)
}

func (a *App) initCache(next repo.Backend) (repo.Backend, error) {
	client := redis.NewClient(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB)
	a.closers = append(a.closers, client.Close)

	cached := redis.NewCachedBackend(next, client, a.cfg.CacheTTL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := cached.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Log.WithField("addr", a.cfg.RedisAddr).Info("Redis cache enabled")
	return cached, nil
}

// NewUseCaseFactory возвращает фабрику, которая на каждый запрос
// создает свою сессию поверх общего backend.
func NewUseCaseFactory(backend repo.Backend) usecase.Factory {
	return func() usecase.TodoUseCase {
		s := repo.NewSession(backend)
		return usecase.NewTodoUseCase(s.Lists(), s.Tasks(), clock.System{})
	}
}

// NewRouter собирает маршруты API. При m == nil метрики не пишутся и
// /metrics не регистрируется.
func NewRouter(newUseCase usecase.Factory, m *metrics.Metrics) *chi.Mux {
	router := chi.NewRouter()

	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		todohttp.RequestLogger,
		middleware.Recoverer,
		middleware.Heartbeat("/health"),
		middleware.Timeout(60*time.Second),
	)
	if m != nil {
		router.Use(m.Middleware)
	}

	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Todo API running"))
	})

	router.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("pong"))
	})

	if m != nil {
		router.Handle("/metrics", m.Handler())
	}

	todohttp.NewTodoHandler(newUseCase, m).RegisterRoutes(router)

	return router
}

// Close освобождает ресурсы в обратном порядке.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) Run() error {
	defer func() {
		if err := a.Close(); err != nil {
			logger.Log.WithError(err).Error("Failed to release resources")
		}
	}()

	serverCtx, serverStopCtx := context.WithCancel(context.Background())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(sig)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		select {
		case <-sig:
			logger.Log.Info("Shutdown signal received")
		case <-serverCtx.Done():
			return
		}

		shutdownCtx, cancel := context.WithTimeout(serverCtx, a.cfg.ShutdownTimeout)
		defer cancel()

		go func() {
			<-shutdownCtx.Done()
			if shutdownCtx.Err() == context.DeadlineExceeded {
				logger.Log.Error("Graceful shutdown timed out")
			}
		}()

		if err := a.Server.Shutdown(shutdownCtx); err != nil {
			logger.Log.WithError(err).Error("HTTP server shutdown failed")
		}
		serverStopCtx()
	}()

	logger.Log.Info("Starting server on " + a.Server.Addr)
	if err := a.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		serverStopCtx()
		a.wg.Wait()
		return fmt.Errorf("server failed: %w", err)
	}

	a.wg.Wait()
	logger.Log.Info("Server stopped gracefully")
	return nil
}
