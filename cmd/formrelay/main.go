package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/formrelay/pkg/clientip"
	"github.com/dmitrymomot/formrelay/pkg/config"
	"github.com/dmitrymomot/formrelay/pkg/dedupe"
	"github.com/dmitrymomot/formrelay/pkg/dispatch"
	"github.com/dmitrymomot/formrelay/pkg/forms"
	"github.com/dmitrymomot/formrelay/pkg/httpserver"
	"github.com/dmitrymomot/formrelay/pkg/logger"
	"github.com/dmitrymomot/formrelay/pkg/mailer"
	"github.com/dmitrymomot/formrelay/pkg/metrics"
	"github.com/dmitrymomot/formrelay/pkg/ratelimiter"
	"github.com/dmitrymomot/formrelay/pkg/receiver"
	"github.com/dmitrymomot/formrelay/pkg/redis"
	"github.com/dmitrymomot/formrelay/pkg/webflow"
)

const serviceName = "formrelay"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.Env, serviceName),
		logger.WithLevelName(cfg.LogLevel),
		logger.WithContextExtractors(receiver.RequestIDExtractor(), clientip.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	registry, err := loadForms(cfg.FormsFile)
	if err != nil {
		return err
	}
	log.Info("forms loaded", slog.Int("count", registry.Len()), slog.Any("forms", registry.Names()))

	var m *metrics.Metrics
	if cfg.Receiver.MetricsEnabled {
		m = metrics.New()
	}

	ml := mailer.New(newSender(cfg.Mail, log), cfg.Mail.Sender())
	if cfg.Mail.DevDir == "" && !cfg.Mail.HasCredentials() {
		log.Warn("SMTP_USER or SMTP_PASSWORD not set, emails will be skipped")
	}

	dispatchLog := log.With(logger.Component("dispatch"))
	d, pool, err := dispatch.New(cfg.Dispatch, ml,
		dispatch.WithLogger(dispatchLog),
		dispatch.WithResultHandlers(dispatch.LogHandler(dispatchLog), dispatch.MetricsHandler(m)),
	)
	if err != nil {
		return err
	}

	var checks []httpserver.Check
	if pool != nil {
		checks = append(checks, pool.Check)
		if err := m.RegisterQueueDepth(pool.Len); err != nil {
			return err
		}
	}

	recvOpts := []receiver.Option{
		receiver.WithLogger(log.With(logger.Component("receiver"))),
		receiver.WithMaxBodyBytes(cfg.Receiver.MaxBodyBytes),
		receiver.WithMetrics(m),
	}
	if cfg.Receiver.Secret != "" {
		recvOpts = append(recvOpts, receiver.WithVerifier(
			webflow.NewVerifier(cfg.Receiver.Secret, cfg.Receiver.SignatureMaxAge)))
	} else {
		log.Warn("WEBFLOW_SECRET not set, webhook signatures are not verified")
	}

	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		defer client.Close()
		checks = append(checks, redis.Healthcheck(client))

		if cfg.DedupeTTL > 0 {
			store, err := dedupe.NewRedisStore(client, cfg.DedupeTTL)
			if err != nil {
				return err
			}
			recvOpts = append(recvOpts, receiver.WithGuard(dedupe.NewGuard(store, log)))
		}
	} else if cfg.DedupeTTL > 0 {
		store, err := dedupe.NewMemoryStore(cfg.DedupeTTL)
		if err != nil {
			return err
		}
		defer store.Close()
		recvOpts = append(recvOpts, receiver.WithGuard(dedupe.NewGuard(store, log)))
	}

	rc, err := receiver.New(registry, d, recvOpts...)
	if err != nil {
		return err
	}

	routerOpts := []receiver.RouterOption{
		receiver.WithReadiness(cfg.Receiver.HealthTimeout, checks...),
		receiver.WithMetricsEndpoint(m),
	}
	if cfg.Receiver.TrustProxy {
		routerOpts = append(routerOpts, receiver.WithClientIP(clientip.New(clientip.DefaultHeaders...)))
	}
	if cfg.RateLimit.Enabled() {
		limiter, err := ratelimiter.New(cfg.RateLimit)
		if err != nil {
			return err
		}
		defer limiter.Close()
		routerOpts = append(routerOpts, receiver.WithRateLimiter(limiter))
	}

	if pool != nil {
		if err := pool.Start(ctx); err != nil {
			return err
		}
	}

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(log.With(logger.Component("http"))))

	g, gctx := errgroup.WithContext(ctx)
	serverDone := make(chan struct{})
	g.Go(func() error {
		defer close(serverDone)
		return srv.Run(gctx, receiver.NewRouter(rc, routerOpts...))
	})
	if pool != nil {
		// The pool stops only after the server has stopped accepting
		// requests, so every accepted submission is still delivered.
		g.Go(func() error {
			<-serverDone
			sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Dispatch.ShutdownTimeout)
			defer cancel()
			return pool.Stop(sctx)
		})
	}

	if err := g.Wait(); err != nil {
		log.Error("shutdown with error", logger.Error(err))
		return err
	}
	log.Info("shutdown complete")
	return nil
}

func loadForms(path string) (*forms.Registry, error) {
	if path == "" {
		return forms.Default(), nil
	}
	return forms.LoadFile(path)
}

func newSender(cfg mailer.Config, log *slog.Logger) mailer.Sender {
	if cfg.DevDir != "" {
		log.Info("development mail sender enabled", slog.String("dir", cfg.DevDir))
		return mailer.NewDevSender(cfg.DevDir)
	}
	return mailer.NewSMTPSender(cfg, mailer.WithSMTPLogger(log.With(logger.Component("smtp"))))
}
