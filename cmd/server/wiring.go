package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stargate/internal/audit"
	dutyhandler "stargate/internal/duty/handler"
	dutymetrics "stargate/internal/duty/metrics"
	dutyservice "stargate/internal/duty/service"
	dutystore "stargate/internal/duty/store"
	personcache "stargate/internal/person/cache"
	personhandler "stargate/internal/person/handler"
	personmetrics "stargate/internal/person/metrics"
	personservice "stargate/internal/person/service"
	personstore "stargate/internal/person/store"
	"stargate/internal/platform/config"
	"stargate/internal/platform/metrics"
	"stargate/internal/platform/middleware"
	"stargate/internal/platform/postgres"
	platformredis "stargate/internal/platform/redis"
	"stargate/internal/seed"
	"stargate/internal/storage"
	"stargate/pkg/platform/httputil"
)

const auditQueueSize = 1024

type app struct {
	router     http.Handler
	storage    string
	background []func(ctx context.Context) error
	closers    []func()
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// stores groups the person and duty persistence for one backend.
type stores struct {
	people interface {
		personservice.Store
		dutyservice.PersonStore
		seed.Counter
	}
	details dutyservice.DetailStore
	duties  dutyservice.DutyStore
	tx      dutyservice.StoreTx
	ping    func(ctx context.Context) error
}

func build(ctx context.Context, cfg config.Server, log *slog.Logger, reg prometheus.Registerer) (*app, error) {
	a := &app{}

	st, err := openStores(ctx, cfg, a)
	if err != nil {
		a.close()
		return nil, err
	}

	var cache personservice.Cache = personcache.Nop{}
	var redisPing func(ctx context.Context) error
	redisClient, err := platformredis.New(ctx, cfg.Redis())
	if err != nil {
		a.close()
		return nil, err
	}
	if redisClient != nil {
		a.closers = append(a.closers, func() { _ = redisClient.Close() })
		cache = personcache.NewRedis(redisClient.Client, cfg.CacheTTL, personcache.WithLogger(log))
		redisPing = redisClient.Health
		log.Info("person projection cache enabled", "ttl", cfg.CacheTTL)
	}

	publisher, err := buildAudit(cfg, log, a)
	if err != nil {
		a.close()
		return nil, err
	}

	personSvc := personservice.New(st.people,
		personservice.WithLogger(log),
		personservice.WithCache(cache),
		personservice.WithAuditPublisher(publisher),
		personservice.WithMetrics(personmetrics.New(reg)),
	)
	dutySvc := dutyservice.New(st.people, st.details, st.duties,
		dutyservice.WithLogger(log),
		dutyservice.WithTx(st.tx),
		dutyservice.WithInvalidator(cache),
		dutyservice.WithAuditPublisher(publisher),
		dutyservice.WithMetrics(dutymetrics.New(reg)),
	)

	if cfg.Seed {
		if _, err := seed.Load(ctx, st.people, personSvc, dutySvc, log); err != nil {
			a.close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	httpMetrics := metrics.New(reg)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Recovery(log, httpMetrics))
	r.Use(middleware.Logger(log))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.LatencyMiddleware(httpMetrics))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", healthz(st.ping, redisPing))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
		r.Use(middleware.ContentTypeJSON)
		personhandler.New(personSvc, log).Register(r)
		dutyhandler.New(dutySvc, log).Register(r)
	})

	a.router = r
	return a, nil
}

// openStores picks PostgreSQL when a DSN is configured and the in-memory
// tables otherwise.
func openStores(ctx context.Context, cfg config.Server, a *app) (*stores, error) {
	if cfg.DatabaseURL == "" {
		a.storage = "memory"
		db := storage.NewMemory()
		return &stores{
			people:  personstore.NewInMemory(db),
			details: dutystore.NewInMemoryDetails(db),
			duties:  dutystore.NewInMemoryDuties(db),
			tx:      dutystore.NewShardedTx(db, cfg.TxTimeout),
			ping:    func(context.Context) error { return nil },
		}, nil
	}

	a.storage = "postgres"
	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.Options{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLife,
	})
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, func() { _ = db.Close() })
	if err := postgres.Migrate(ctx, db); err != nil {
		return nil, err
	}
	return &stores{
		people:  personstore.NewPostgres(db),
		details: dutystore.NewPostgresDetails(db),
		duties:  dutystore.NewPostgresDuties(db),
		tx:      dutystore.NewPostgresTx(db, cfg.TxTimeout),
		ping:    db.PingContext,
	}, nil
}

// buildAudit always logs events. With brokers configured, events are also
// queued for a background worker that produces them to Kafka.
func buildAudit(cfg config.Server, log *slog.Logger, a *app) (*audit.Publisher, error) {
	sinks := []audit.Sink{audit.NewLogSink(log)}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf("kafka audit sink: %w", err)
		}
		a.closers = append(a.closers, kafka.Close)
		queue := audit.NewQueue(auditQueueSize, log)
		a.background = append(a.background, audit.NewWorker(kafka, queue, log).Run)
		sinks = append(sinks, queue)
		log.Info("kafka audit publishing enabled", "topic", cfg.KafkaTopic)
	}
	return audit.NewPublisher(sinks...), nil
}

func healthz(checks ...func(ctx context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(r.Context()); err != nil {
				httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
