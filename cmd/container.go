// cmd/container.go
//
// Root composition root. Owns infrastructure clients (Redis, Postgres, AWS)
// and composes the bounded-context containers. This is the only place that
// knows about every module.
package main

import (
	"context"

	"github.com/Abraxas-365/passgate/pkg/config"
	"github.com/Abraxas-365/passgate/pkg/logx"
	"github.com/Abraxas-365/passgate/pkg/notify"
	"github.com/Abraxas-365/passgate/pkg/notify/notifyconsole"
	"github.com/Abraxas-365/passgate/pkg/notify/notifyses"
	"github.com/Abraxas-365/passgate/pkg/notify/notifysns"
	"github.com/Abraxas-365/passgate/pkg/otp/otpcontainer"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
)

// Container holds shared infrastructure and composed module containers.
type Container struct {
	Config *config.Config

	// Infrastructure (created only when a module needs it)
	Redis  *redis.Client
	DB     *sqlx.DB
	Notify *notify.Client

	// Bounded-context containers
	OTP *otpcontainer.Container
}

func NewContainer(cfg *config.Config) *Container {
	logx.Info("Initializing application container...")

	c := &Container{Config: cfg}

	c.initInfrastructure()
	c.initModules()

	logx.Info("Application container initialized")
	return c
}

// ---------------------------------------------------------------------------
// Infrastructure — storage clients and outbound delivery
// ---------------------------------------------------------------------------

func (c *Container) initInfrastructure() {
	switch c.Config.OTP.Store {
	case "redis":
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     c.Config.Redis.Address(),
			Password: c.Config.Redis.Password,
			DB:       c.Config.Redis.DB,
		})
		if err := c.Redis.Ping(context.Background()).Err(); err != nil {
			logx.Fatalf("Failed to connect to Redis: %v", err)
		}
		logx.Info("  Redis connected")

	case "postgres":
		db, err := sqlx.Connect("postgres", c.Config.Database.DSN())
		if err != nil {
			logx.Fatalf("Failed to connect to database: %v", err)
		}
		db.SetMaxOpenConns(c.Config.Database.MaxOpenConns)
		db.SetMaxIdleConns(c.Config.Database.MaxIdleConns)
		db.SetConnMaxLifetime(c.Config.Database.ConnMaxLifetime)
		c.DB = db
		logx.Info("  Database connected")
	}

	c.initNotify()
}

func (c *Container) initNotify() {
	cfg := c.Config.Notify

	needsAWS := cfg.EmailProvider == "ses" || cfg.SMSProvider == "sns"

	var email notify.EmailSender
	var sms notify.SMSSender
	console := notifyconsole.NewConsoleProvider()

	if needsAWS {
		awsConf, err := awsConfig.LoadDefaultConfig(context.Background(),
			awsConfig.WithRegion(cfg.AWSRegion))
		if err != nil {
			logx.Fatalf("Unable to load AWS SDK config: %v", err)
		}

		if cfg.EmailProvider == "ses" {
			email = notifyses.NewSESProvider(ses.NewFromConfig(awsConf), cfg.FromAddress)
			logx.Infof("  SES email provider configured (region: %s)", cfg.AWSRegion)
		}
		if cfg.SMSProvider == "sns" {
			sms = notifysns.NewSNSProvider(sns.NewFromConfig(awsConf), cfg.SMSSenderID)
			logx.Infof("  SNS sms provider configured (region: %s)", cfg.AWSRegion)
		}
	}

	if email == nil {
		email = console
		logx.Warn("  Using console email provider (dev mode)")
	}
	if sms == nil {
		sms = console
		logx.Warn("  Using console sms provider (dev mode)")
	}

	c.Notify = notify.NewClient(email, sms)
}

// ---------------------------------------------------------------------------
// Module composition — each bounded context wires itself
// ---------------------------------------------------------------------------

func (c *Container) initModules() {
	otpC, err := otpcontainer.New(otpcontainer.Deps{
		Cfg:    c.Config,
		Redis:  c.Redis,
		DB:     c.DB,
		Notify: c.Notify,
	})
	if err != nil {
		logx.Fatalf("Failed to initialize OTP module: %v", err)
	}
	c.OTP = otpC
}

// ---------------------------------------------------------------------------
// Lifecycle
// ---------------------------------------------------------------------------

func (c *Container) StartBackgroundServices(ctx context.Context) {
	c.OTP.StartBackgroundServices(ctx)
}

func (c *Container) Cleanup() {
	logx.Info("Cleaning up resources...")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logx.Errorf("Error closing Redis: %v", err)
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			logx.Errorf("Error closing database: %v", err)
		}
	}

	logx.Info("Cleanup complete")
}
