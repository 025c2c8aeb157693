package otpcontainer

import (
	"context"
	"time"

	"github.com/Abraxas-365/passgate/pkg/config"
	"github.com/Abraxas-365/passgate/pkg/logx"
	"github.com/Abraxas-365/passgate/pkg/notify"
	"github.com/Abraxas-365/passgate/pkg/otp"
	"github.com/Abraxas-365/passgate/pkg/otp/otpapi"
	"github.com/Abraxas-365/passgate/pkg/otp/otpinfra"
	"github.com/Abraxas-365/passgate/pkg/otp/otpsrv"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// ---------------------------------------------------------------------------
// Deps: explicit external dependencies of the OTP bounded context.
// No hidden globals — everything comes through here.
// ---------------------------------------------------------------------------

type Deps struct {
	Cfg *config.Config

	// Redis is required when Cfg.OTP.Store is "redis".
	Redis *redis.Client

	// DB is required when Cfg.OTP.Store is "postgres".
	DB *sqlx.DB

	// Notify delivers codes; its providers decide how email and sms
	// actually go out.
	Notify *notify.Client
}

// ---------------------------------------------------------------------------
// Container: the public surface of the OTP module.
// ---------------------------------------------------------------------------

type Container struct {
	Service  *otpsrv.Service
	Handlers *otpapi.Handlers
	Store    otp.CredentialStore

	sweeper *otpinfra.Sweeper
}

// New constructs the OTP dependency graph: store → notifiers → service →
// handlers.
func New(deps Deps) (*Container, error) {
	logx.Info("Initializing OTP container...")

	c := &Container{}
	cfg := deps.Cfg

	policy := otp.Policy{
		TTL:         cfg.OTP.TTL,
		Cooldown:    cfg.OTP.Cooldown,
		MaxAttempts: cfg.OTP.MaxAttempts,
		CodeLength:  cfg.OTP.CodeLength,
	}

	// ── Credential store ─────────────────────────────────────────────────

	switch cfg.OTP.Store {
	case "redis":
		c.Store = otpinfra.NewRedisStore(deps.Redis)
		logx.Info("  Using redis credential store")
	case "postgres":
		pg := otpinfra.NewPostgresStore(deps.DB)
		if err := pg.EnsureSchema(context.Background()); err != nil {
			return nil, err
		}
		c.Store = pg
		logx.Info("  Using postgres credential store")
	default:
		mem := otpinfra.NewMemoryStore()
		c.Store = mem
		if cfg.OTP.SweepInterval > 0 {
			c.sweeper = otpinfra.NewSweeper(mem, otp.SystemClock(), cfg.OTP.SweepInterval)
		}
		logx.Warn("  Using in-memory credential store (single instance only)")
	}

	// ── Delivery ─────────────────────────────────────────────────────────

	emailNotifier, err := otpinfra.NewEmailNotifier(
		deps.Notify,
		cfg.Notify.FromAddress,
		cfg.Notify.EmailSubject,
		cfg.Notify.FromName,
		policy.TTL,
	)
	if err != nil {
		return nil, err
	}
	smsNotifier := otpinfra.NewSMSNotifier(deps.Notify, cfg.Notify.SMSSenderID, policy.TTL)
	notifier := otpinfra.NewChannelNotifier(emailNotifier, smsNotifier)

	// ── Service & handlers ───────────────────────────────────────────────

	c.Service = otpsrv.NewService(
		c.Store,
		notifier,
		policy,
		otpsrv.WithAudit(otpinfra.NewLogxAuditService()),
	)
	c.Handlers = otpapi.NewHandlers(c.Service)

	logx.WithFields(logx.Fields{
		"store":        cfg.OTP.Store,
		"ttl":          policy.TTL.String(),
		"cooldown":     policy.Cooldown.String(),
		"max_attempts": policy.MaxAttempts,
	}).Info("OTP container initialized")
	return c, nil
}

// StartBackgroundServices launches the expiry sweeper when the in-memory
// store is active. Correctness never depends on it.
func (c *Container) StartBackgroundServices(ctx context.Context) {
	if c.sweeper != nil {
		go c.sweeper.Start(ctx)
		logx.Info("  OTP expiry sweeper started")
	}
}

// HealthCheck reports on the store backend, for the /health endpoint.
func (c *Container) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	type pinger interface{ Ping(context.Context) error }
	if p, ok := c.Store.(pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}
