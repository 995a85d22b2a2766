package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/portfolio-refresh-api/internal/api/handler"
	"github.com/vfg2006/portfolio-refresh-api/internal/api/handler/router"
	"github.com/vfg2006/portfolio-refresh-api/internal/config"
	"github.com/vfg2006/portfolio-refresh-api/internal/usecases/authenticating"
	"github.com/vfg2006/portfolio-refresh-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

// Services reúne as dependências expostas pela API.
type Services struct {
	Refresher handler.RefreshStarter
	Snapshots handler.SnapshotService
	Scheduler handler.RefreshScheduler
	Database  handler.Pinger
	Auth      authenticating.TokenValidator
	Gatherer  prometheus.Gatherer
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services) (*Server, error) {
	if services.Auth == nil {
		return nil, fmt.Errorf("validador de token é obrigatório")
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Metrics(services.Gatherer)...),
		router.WithRoutes(handler.Refresh(services.Refresher)...),
		router.WithRoutes(handler.Snapshots(services.Snapshots)...),
		router.WithRoutes(handler.CronJobs(services.Scheduler)...),
	)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
			Handler:           NewHandler(cfg, services.Auth, rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}, nil
}

// NewHandler aplica a cadeia de middlewares globais.
func NewHandler(cfg *config.Config, auth authenticating.TokenValidator, rt http.Handler) http.Handler {
	return alice.New(
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(cfg.Server.AllowedOrigins),
		middleware.AuthMiddleware(auth),
	).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	select {
	case <-done:
		logrus.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor HTTP desligado com sucesso")
	return nil
}
