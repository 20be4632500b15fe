// main wires the ledger substrate, services, and HTTP gateway, and keeps the
// server lifecycle small. Business logic lives in internal packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"seguros/internal/ledger"
	ledgermemory "seguros/internal/ledger/memory"
	ledgerpostgres "seguros/internal/ledger/postgres"
	ledgerredis "seguros/internal/ledger/redis"
	"seguros/internal/platform/audit"
	"seguros/internal/platform/config"
	"seguros/internal/platform/httpserver"
	"seguros/internal/platform/logger"
	"seguros/internal/platform/middleware"
	platformpostgres "seguros/internal/platform/postgres"
	platformredis "seguros/internal/platform/redis"
	"seguros/internal/policy"
	"seguros/internal/policy/metrics"
	policyservice "seguros/internal/policy/service"
	"seguros/internal/private"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx := context.Background()

	store, cleanup, err := buildLedger(ctx, cfg)
	if err != nil {
		log.Error("ledger setup failed", "error", err.Error())
		os.Exit(1)
	}
	defer cleanup()

	publisher := audit.Publisher(audit.Nop{})
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			log.Error("kafka setup failed", "error", err.Error())
			os.Exit(1)
		}
		defer kafka.Close()
		publisher = kafka
	}

	policies := policy.NewService(store,
		policyservice.WithLogger(log),
		policyservice.WithMetrics(metrics.New()),
		policyservice.WithAuditPublisher(publisher),
	)
	privateData := private.New(store, log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.Logger(log))
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())
	policy.NewHandler(policies, privateData, log).Register(r)

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting seguros server", "addr", cfg.Addr)

	runCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(runCtx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err.Error())
		os.Exit(1)
	}
}

// buildLedger selects the substrate from configuration: postgres when
// configured, in-memory otherwise, with the private partition routed to
// redis when available.
func buildLedger(ctx context.Context, cfg config.Server) (ledger.Store, func(), error) {
	cleanup := func() {}

	var store ledger.Store
	if cfg.PostgresURL != "" {
		db, err := platformpostgres.Open(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, cleanup, err
		}
		pg := ledgerpostgres.New(db)
		if err := pg.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, cleanup, err
		}
		store = pg
		cleanup = func() { _ = db.Close() }
	} else {
		store = ledgermemory.New()
	}

	if cfg.RedisURL != "" {
		client, err := platformredis.New(cfg.RedisURL)
		if err != nil {
			return nil, cleanup, err
		}
		prev := cleanup
		cleanup = func() {
			_ = client.Close()
			prev()
		}
		store = ledger.Partitioned{Store: store, Private: ledgerredis.NewPrivateStore(client.Client)}
	}

	return store, cleanup, nil
}
