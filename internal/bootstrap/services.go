package bootstrap

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

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/nftheater/admin-api/config"
	"github.com/nftheater/admin-api/internal/data"
	"github.com/nftheater/admin-api/internal/observability/notify/slack"
	"github.com/nftheater/admin-api/internal/observability/statsd"
	"github.com/nftheater/admin-api/internal/service"
	"github.com/nftheater/admin-api/internal/service/failurenotifier"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth          *service.AuthService
	Admins        *service.AdminUserService
	Observability ObservabilityContainer
}

// ObservabilityContainer groups the optional observability dependencies.
type ObservabilityContainer struct {
	MetricsSink     statsd.Sink
	MetricsCloser   func() error
	FailureNotifier *failurenotifier.Service
}

// ServiceDeps contains the infrastructure dependencies for building services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// NewServices builds the application services from infrastructure dependencies.
func NewServices(ctx context.Context, deps *ServiceDeps) ServiceContainer {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	observability := buildObservability(logger, deps.Config.Observability)

	auth := BuildAuthService(ctx, AuthConfig{
		Auth:        deps.Config.Auth,
		RedisClient: deps.RedisClient,
		DB:          deps.DB,
		Metrics:     observability.MetricsSink,
		Notifier:    observability.FailureNotifier,
		Logger:      logger,
	})

	var admins *service.AdminUserService
	if deps.DB != nil {
		admins = service.NewAdminUserService(service.AdminUserServiceOptions{
			Repo: data.NewAdminRepo(deps.DB),
		})
	}

	return ServiceContainer{
		Auth:          auth,
		Admins:        admins,
		Observability: observability,
	}
}

func buildObservability(logger *slog.Logger, cfg config.ObservabilityConfig) ObservabilityContainer {
	container := ObservabilityContainer{}

	if cfg.Metrics.IsEnabled() {
		client, err := statsd.NewClient(statsd.Config{
			Enabled: true,
			Address: cfg.Metrics.StatsdAddress,
			Prefix:  "nftheater.admin",
			Logger:  logger,
		})
		if err != nil {
			logger.Warn("statsd metrics disabled", "error", err)
		} else {
			container.MetricsSink = client
			container.MetricsCloser = client.Close
		}
	}

	container.FailureNotifier = buildFailureNotifier(logger, cfg.Notifications)
	return container
}

func buildFailureNotifier(logger *slog.Logger, cfg config.ObservabilityNotificationsConfig) *failurenotifier.Service {
	if !cfg.Enabled {
		return nil
	}

	var sinks []failurenotifier.SinkRegistration
	if cfg.Slack.Enabled {
		client, err := slack.NewClient(slack.Config{
			WebhookURL: cfg.Slack.WebhookURL,
			Channel:    cfg.Slack.Channel,
			Username:   cfg.Slack.Username,
			Timeout:    cfg.Timeout,
		})
		if err != nil {
			logger.Warn("slack notifications disabled", "error", err)
		} else {
			sinks = append(sinks, failurenotifier.SinkRegistration{Name: "slack", Sink: client})
		}
	}
	if len(sinks) == 0 {
		return nil
	}

	return failurenotifier.NewService(failurenotifier.Options{
		Logger:    logger.With("component", "failure_notifier"),
		Sinks:     sinks,
		Threshold: cfg.FailureThreshold,
		Window:    cfg.FailureWindow,
	})
}

// ServiceOrchestrationConfig contains configuration for service orchestration.
type ServiceOrchestrationConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

const (
	// shutdownWaitTimeout is the maximum time to wait for services to stop gracefully.
	shutdownWaitTimeout = 15 * time.Second
)

// backgroundService describes a startable background component.
type backgroundService struct {
	name  string
	start func(context.Context) error
}

// newRemoteConfigRefresher periodically re-fetches the feature-flag document.
// Fetch failures are logged and never abort the loop.
func newRemoteConfigRefresher(
	auth *service.AuthService,
	interval time.Duration,
	logger *slog.Logger,
) backgroundService {
	return backgroundService{
		name: "remote config refresher",
		start: func(ctx context.Context) error {
			// Prime the snapshot before the first tick.
			if err := auth.RefreshRemoteConfig(ctx); err != nil {
				logger.WarnContext(ctx, "remote config refresh failed", "error", err)
			}

			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-ticker.C:
					if err := auth.RefreshRemoteConfig(ctx); err != nil {
						logger.WarnContext(ctx, "remote config refresh failed", "error", err)
					}
				}
			}
		},
	}
}

func buildBackgroundServices(cfg *ServiceOrchestrationConfig, logger *slog.Logger) []backgroundService {
	var services []backgroundService

	rc := cfg.Config.Auth.RemoteConfig
	if rc.Enabled && cfg.Services.Auth != nil {
		services = append(services, newRemoteConfigRefresher(cfg.Services.Auth, rc.RefreshInterval, logger))
	}

	return services
}

// RunServicesWithShutdown starts the HTTP server and background services and
// manages their lifecycle. It blocks until a shutdown signal is received or a
// background service fails.
func RunServicesWithShutdown(cfg *ServiceOrchestrationConfig) error {
	if cfg == nil {
		return errors.New("service orchestration config is required")
	}
	if cfg.Config == nil {
		return errors.New("service orchestration config missing AppConfig")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	serviceCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := StartHTTPServer(&HTTPServerConfig{
		Config:      cfg.Config,
		Services:    cfg.Services,
		DB:          cfg.DB,
		RedisClient: cfg.RedisClient,
		Logger:      logger,
	})

	group, groupCtx := errgroup.WithContext(serviceCtx)
	for _, svc := range buildBackgroundServices(cfg, logger) {
		logger.Info("background service started", "service", svc.name)
		group.Go(func() error {
			if err := svc.start(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s failed: %w", svc.name, err)
			}
			return nil
		})
	}

	err := waitForShutdown(shutdownConfig{
		ctx:        serviceCtx,
		cancel:     cancel,
		groupCtx:   groupCtx,
		httpServer: server,
		logger:     logger,
	})

	if waitErr := group.Wait(); waitErr != nil && err == nil {
		err = waitErr
	}

	if closer := cfg.Services.Observability.MetricsCloser; closer != nil {
		if closeErr := closer(); closeErr != nil {
			logger.Warn("failed to close metrics sink", "error", closeErr)
		}
	}

	return err
}

// shutdownConfig contains dependencies for graceful shutdown.
type shutdownConfig struct {
	ctx        context.Context
	cancel     context.CancelFunc
	groupCtx   context.Context
	httpServer *http.Server
	logger     *slog.Logger
}

// waitForShutdown waits for a shutdown signal or a background failure, then
// stops the HTTP server gracefully.
func waitForShutdown(cfg shutdownConfig) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case <-quit:
		cfg.logger.Info("shutting down services...")
	case <-cfg.groupCtx.Done():
		cfg.logger.Error("background service failed, shutting down")
	}

	cfg.cancel()
	return stopHTTPServer(cfg)
}

func stopHTTPServer(cfg shutdownConfig) error {
	if cfg.httpServer == nil {
		return nil
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownWaitTimeout)
	defer cancelShutdown()

	return ShutdownHTTPServer(ShutdownConfig{
		Context: shutdownCtx,
		Server:  cfg.httpServer,
		Logger:  cfg.logger,
	})
}
