package main

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/portfolio-refresh-api/infrastructure/database/postgres"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/meta/metaclient"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/sheets"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/integrator/ssotica/ssoticaclient"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/lock"
	"github.com/vfg2006/portfolio-refresh-api/infrastructure/repository"
	"github.com/vfg2006/portfolio-refresh-api/internal/api"
	"github.com/vfg2006/portfolio-refresh-api/internal/config"
	"github.com/vfg2006/portfolio-refresh-api/internal/metrics"
	"github.com/vfg2006/portfolio-refresh-api/internal/scheduler"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/authenticating"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/normalizing"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/refreshing"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/snapshotting"
	"github.com/vfg2006/portfolio-refresh-api/pkg/log"
	"github.com/vfg2006/portfolio-refresh-api/pkg/secret"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if err := log.Setup(cfg.App.Env, cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	locker := newLocker(ctx, cfg.Redis)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	refreshMetrics := metrics.NewRefreshMetrics(registry)

	cipher, err := secret.NewCipher(cfg.Secrets.EncryptionKey)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar cifra dos tokens de loja")
	}

	classifier, err := normalizing.NewClassifier(cfg.Refresh.SignaturesFile)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao carregar assinaturas de erro")
	}
	logrus.Infof("Assinaturas de erro carregadas (versão %s)", classifier.Version())

	accountRepo := repository.NewAccountRepository(pgConn)
	snapshotRepo := repository.NewSnapshotRepository(pgConn)
	snapshotMetricRepo := repository.NewSnapshotMetricRepository(pgConn)

	metaIntegrator := meta.New(metaclient.NewClient(cfg))
	ssoticaIntegrator := ssotica.New(ssoticaclient.NewClient(cfg))

	sheetsClient, err := sheets.NewClient(ctx, cfg.Sheets)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar cliente do Google Sheets")
	}

	snapshotService := snapshotting.NewService(snapshotRepo, snapshotMetricRepo, cfg.Refresh.HistoryLimit)

	concurrency := cfg.Refresh.MaxConcurrentJobs
	refreshService := refreshing.NewService(
		refreshing.Dependencies{
			Snapshots:  snapshotService,
			Accounts:   accountRepo,
			Locker:     locker,
			Persister:  refreshing.NewPersister(snapshotService, sheetsClient, refreshMetrics),
			Classifier: classifier,
			Metrics:    refreshMetrics,
			LockTTL:    cfg.Refresh.LockTTL,
		},
		refreshing.NewAdInsightsIntegration(metaIntegrator, concurrency, sinkTarget(cfg.AdInsightsRefresh.SheetID, cfg.AdInsightsRefresh.SheetRange)),
		refreshing.NewFinanceBatchIntegration(ssoticaIntegrator, cipher, concurrency, sinkTarget(cfg.FinanceBatchRefresh.SheetID, cfg.FinanceBatchRefresh.SheetRange)),
		refreshing.NewPodSheetIntegration(
			metaIntegrator,
			ssoticaIntegrator,
			cipher,
			refreshing.Strategy{BatchSize: cfg.Refresh.BatchSize, Concurrency: concurrency},
			sinkTarget(cfg.PodSheetRefresh.SheetID, cfg.PodSheetRefresh.SheetRange),
		),
	)

	authenticator, err := authenticating.NewService(cfg.Auth)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao iniciar autenticação")
	}

	refreshSyncService := scheduler.NewRefreshSyncService(refreshService, cfg)
	if err := refreshSyncService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de atualizações")
	} else {
		logrus.Info("Agendador de atualizações iniciado com sucesso")
	}

	server, err := api.New(cfg, api.Services{
		Refresher: refreshService,
		Snapshots: snapshotService,
		Scheduler: refreshSyncService,
		Database:  pgConn,
		Auth:      authenticator,
		Gatherer:  registry,
	})
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

func sinkTarget(sheetID, writeRange string) refreshing.SinkTarget {
	return refreshing.SinkTarget{SheetID: sheetID, Range: writeRange}
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}

// newLocker usa o Redis quando configurado; sem ele o lock vale só para esta instância.
func newLocker(ctx context.Context, cfg config.Redis) lock.Locker {
	if cfg.Addr == "" {
		logrus.Warn("REDIS_ADDR não configurado, usando lock local")
		return lock.NewLocalLocker()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao Redis")
	}

	logrus.Info("Conexão com Redis estabelecida com sucesso")
	return lock.NewRedisLocker(client)
}
