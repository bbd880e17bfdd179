package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/nftheater/admin-api/config"
	"github.com/nftheater/admin-api/internal/adapters/devauth"
	"github.com/nftheater/admin-api/internal/adapters/identity"
	redisadapter "github.com/nftheater/admin-api/internal/adapters/redis"
	"github.com/nftheater/admin-api/internal/adapters/remoteconfig"
	"github.com/nftheater/admin-api/internal/data"
	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/domain/model"
	"github.com/nftheater/admin-api/internal/observability/statsd"
	"github.com/nftheater/admin-api/internal/ports"
	"github.com/nftheater/admin-api/internal/service"
	"github.com/nftheater/admin-api/internal/service/failurenotifier"
)

// AuthConfig contains configuration for the auth service. Metrics and
// Notifier are optional pre-built observability dependencies.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedisClient redis.UniversalClient
	DB          *sql.DB
	Metrics     statsd.Sink
	Notifier    *failurenotifier.Service
	Logger      *slog.Logger
}

// roleLabels backs the default translator. The catalog covers only the role
// message IDs the domain layer emits; everything else echoes the ID so
// callers fall through to their own fallback text.
var roleLabels = map[string]string{
	"role.superAdmin":      "Super Admin",
	"role.admin":           "Admin",
	"role.netflixAdmin":    "Netflix Admin",
	"role.netflixAuthor":   "Netflix Author",
	"role.youtubeAdmin":    "YouTube Admin",
	"role.youtubeAuthor":   "YouTube Author",
	"role.customerSupport": "Customer Support",
	"role.operation":       "Operation",
	"role.branchManager":   "Branch Manager",
	"role.branchOfficer":   "Branch Officer",
}

func defaultTranslator(messageID string) string {
	if label, ok := roleLabels[messageID]; ok {
		return label
	}
	return messageID
}

// BuildAuthService creates an auth service based on the configured auth mode.
// Returns nil if auth is not configured or configuration is invalid.
func BuildAuthService(ctx context.Context, cfg AuthConfig) *service.AuthService {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.RedisClient == nil {
		logger.Warn("auth service disabled: redis client not configured", "mode", cfg.Auth.Mode)
		return nil
	}
	if cfg.DB == nil {
		logger.Warn("auth service disabled: database not configured", "mode", cfg.Auth.Mode)
		return nil
	}

	provider, err := buildIdentityProvider(ctx, cfg)
	if err != nil {
		logger.Warn("failed to create identity provider, auth disabled",
			"mode", cfg.Auth.Mode, "error", err)
		return nil
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider:      provider,
		Sessions:      redisadapter.NewSessionStore(cfg.RedisClient),
		Profiles:      data.NewAdminDirectory(data.NewAdminRepo(cfg.DB)),
		KV:            redisadapter.NewKeyValueStore(cfg.RedisClient, logger),
		RemoteConfig:  buildRemoteConfig(cfg.Auth.RemoteConfig, logger),
		Metrics:       cfg.Metrics,
		Notifier:      cfg.Notifier,
		Translate:     defaultTranslator,
		Logger:        logger.With("component", "auth_service"),
		SessionTTL:    cfg.Auth.Session.TTL,
		RememberMeTTL: cfg.Auth.Session.RememberMeTTL,
	})
}

func buildIdentityProvider(ctx context.Context, cfg AuthConfig) (ports.IdentityProvider, error) {
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		return devauth.NewProvider(devauth.Config{
			Email:       cfg.Auth.DevAuth.Email,
			Password:    cfg.Auth.DevAuth.Password,
			UserID:      cfg.Auth.DevAuth.UserID,
			DisplayName: cfg.Auth.DevAuth.AdminName,
		})

	case config.AuthModePassword:
		ic := cfg.Auth.Identity
		if ic.BaseURL == "" || ic.APIKey == "" || ic.TokenURL == "" {
			return nil, errors.New("identity backend requires base url, api key, and token url")
		}
		return identity.NewProvider(ctx, identity.ProviderConfig{
			BaseURL:   ic.BaseURL,
			APIKey:    ic.APIKey,
			IssuerURL: ic.IssuerURL,
			ClientID:  ic.ClientID,
			TokenURL:  ic.TokenURL,
			Timeout:   ic.Timeout,
		})

	default:
		return nil, errors.New("unknown auth mode")
	}
}

// buildRemoteConfig returns nil when the feature-flag fetch is disabled;
// the auth service treats a nil client as "no remote config".
func buildRemoteConfig(cfg config.RemoteConfigConfig, logger *slog.Logger) ports.RemoteConfig {
	if !cfg.Enabled {
		return nil
	}
	client, err := remoteconfig.NewClient(remoteconfig.Config{
		URL:     cfg.URL,
		Timeout: cfg.Timeout,
	})
	if err != nil {
		logger.Warn("remote config disabled", "error", err)
		return nil
	}
	return client
}

// EnsureDevAdmin seeds the admin-user row behind the mock identity so a
// fresh development database can sign in immediately. Safe to call on every
// startup; an existing row is left untouched.
func EnsureDevAdmin(ctx context.Context, db *sql.DB, cfg config.DevAuthConfig, logger *slog.Logger) error {
	repo := data.NewAdminRepo(db)

	role := string(domainauth.NormalizeRole(cfg.Role))
	_, err := repo.Create(ctx, &model.CreateAdminUserRequest{
		UID:        cfg.UserID,
		Email:      cfg.Email,
		AdminName:  cfg.AdminName,
		Account:    cfg.Account,
		Role:       role,
		Privileges: cfg.Privileges,
	})
	if errors.Is(err, data.ErrAdminUserExists) {
		return nil
	}
	if err != nil {
		return err
	}

	if logger != nil {
		logger.InfoContext(ctx, "seeded development admin user",
			"uid", cfg.UserID, "email", cfg.Email, "role", role)
	}
	return nil
}
