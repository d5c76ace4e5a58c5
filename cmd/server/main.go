package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"attest/internal/admin"
	"attest/internal/audit"
	"attest/internal/authz"
	certhandler "attest/internal/certification/handler"
	certmetrics "attest/internal/certification/metrics"
	"attest/internal/certification/service"
	"attest/internal/certification/store/ledger"
	revocationStore "attest/internal/certification/store/revocation"
	"attest/internal/certification/store/verifycache"
	"attest/internal/clock"
	"attest/internal/pause"
	"attest/internal/platform/config"
	"attest/internal/platform/httpserver"
	"attest/internal/platform/logger"
	platformpg "attest/internal/platform/postgres"
	platformredis "attest/internal/platform/redis"
	"attest/internal/requirements"
	"attest/internal/token"
	"attest/internal/validator"
	"attest/pkg/domain"
)

// main wires the dependencies and keeps the server lifecycle small. Business
// logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("registry terminated", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	genesis, err := domain.ParseActorID(cfg.GenesisAdmin)
	if err != nil {
		return fmt.Errorf("ATTEST_GENESIS_ADMIN must be a valid UUID: %w", err)
	}

	var (
		roleStore   authz.Store
		pauseStore  pause.Store
		reqStore    requirements.Store
		ledgerStore service.Ledger
		revStore    service.RevocationLog
		txRunner    service.TxRunner
		auditSinks  []audit.Appender
	)
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer func() { _ = db.Close() }()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping postgres: %w", err)
		}
		if err := platformpg.EnsureSchema(ctx, db); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}

		roleStore = authz.NewPostgres(db)
		pauseStore = pause.NewPostgres(db)
		reqStore = requirements.NewPostgres(db)
		ledgerStore = ledger.NewPostgres(db)
		revStore = revocationStore.NewPostgres(db)
		txRunner = newPostgresTxRunner(db)
		auditSinks = append(auditSinks, audit.NewPostgres(db))
	} else {
		log.Warn("no postgres configured, using in-memory stores")
		roleStore = authz.NewInMemoryStore()
		pauseStore = pause.NewInMemoryStore()
		reqStore = requirements.NewInMemoryStore()
		ledgerStore = ledger.NewInMemoryStore()
		revStore = revocationStore.NewInMemoryStore()
		auditSinks = append(auditSinks, audit.NewInMemoryStore())
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return fmt.Errorf("connect kafka audit sink: %w", err)
		}
		defer kafkaSink.Close()
		auditSinks = append(auditSinks, kafkaSink)
	}

	inbox := make(chan audit.Event, 256)
	publisher := audit.NewPublisher(inbox, log)
	worker := audit.NewWorker(inbox, log, auditSinks...)

	registry := authz.NewRegistry(roleStore, genesis,
		authz.WithLogger(log),
		authz.WithAuditEmitter(publisher),
	)
	if err := registry.Seed(ctx); err != nil {
		return fmt.Errorf("seed genesis admin: %w", err)
	}

	pauses := pause.NewSwitch(pauseStore, registry,
		pause.WithLogger(log),
		pause.WithAuditEmitter(publisher),
	)
	catalog := requirements.NewCatalog(reqStore, registry,
		requirements.WithLogger(log),
		requirements.WithAuditEmitter(publisher),
	)

	opts := []service.Option{
		service.WithLogger(log),
		service.WithMetrics(certmetrics.New()),
		service.WithAuditEmitter(publisher),
	}
	if txRunner != nil {
		opts = append(opts, service.WithTxRunner(txRunner))
	}

	rdb, err := platformredis.New(cfg.Redis)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if rdb != nil {
		defer func() { _ = rdb.Close() }()
		opts = append(opts, service.WithVerifyCache(verifycache.NewRedis(rdb.Client, cfg.VerifyCacheTTL)))
	}

	svc, err := service.New(
		ledgerStore,
		revStore,
		registry,
		pauses,
		catalog,
		validator.NewPolicy(),
		clock.NewSystem(cfg.HeightsPerDay),
		cfg.HeightsPerDay,
		opts...,
	)
	if err != nil {
		return fmt.Errorf("build certification service: %w", err)
	}

	tokens := token.NewService(cfg.JWTSigningKey, "attest", "attest")
	certHandler := certhandler.New(svc, log)
	adminHandler := admin.New(registry, pauses, catalog, log)

	srv := httpserver.New(cfg.Addr, newRouter(certHandler, adminHandler, tokens, rdb, cfg.VerifyRateLimit, log))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting certification registry", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		if err := worker.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
