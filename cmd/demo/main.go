// Command demo runs a small signup site: a form is bound and validated, and
// on success the visitor is redirected with a flash message kept in TempData.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/bindkit/pkg/config"
	"github.com/dmitrymomot/bindkit/pkg/httpserver"
	"github.com/dmitrymomot/bindkit/pkg/logger"
	"github.com/dmitrymomot/bindkit/pkg/redis"
	"github.com/dmitrymomot/bindkit/pkg/session"
	"github.com/dmitrymomot/bindkit/pkg/tempdata"
)

type appConfig struct {
	Env          string `env:"APP_ENV" envDefault:"development"`
	Name         string `env:"APP_NAME" envDefault:"bindkit-demo"`
	SessionStore string `env:"SESSION_STORE" envDefault:"memory"`
	TempDataKey  string `env:"TEMPDATA_SESSION_KEY" envDefault:"__tempdata"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		appCfg     appConfig
		sessionCfg session.Config
		redisCfg   redis.Config
		httpCfg    httpserver.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&redisCfg)
	config.MustLoad(&httpCfg)

	log := logger.New(
		logger.WithEnvironment(appCfg.Env, appCfg.Name),
		logger.WithContextValue("request_id", middleware.RequestIDKey),
	)
	logger.SetAsDefault(log)

	if err := run(ctx, log, appCfg, sessionCfg, redisCfg, httpCfg); err != nil {
		log.Error("demo stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, log *slog.Logger, appCfg appConfig, sessionCfg session.Config, redisCfg redis.Config, httpCfg httpserver.Config) error {
	sessionOpts := []session.Option{session.WithLogger(log)}
	var readiness []func(context.Context) error

	if appCfg.SessionStore == "redis" {
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return err
		}
		defer client.Close()

		sessionOpts = append(sessionOpts, session.WithStore(session.NewRedisStore(client)))
		readiness = append(readiness, redis.Healthcheck(client))
	}

	sessions := session.NewFromConfig(sessionCfg, sessionOpts...)
	defer sessions.Close()

	provider := tempdata.NewSessionProvider(
		tempdata.WithKey(appCfg.TempDataKey),
		tempdata.WithLogger(log),
	)

	log.Info("starting demo",
		slog.String("session_store", appCfg.SessionStore),
		slog.String("tempdata_key", provider.Key()),
	)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	return srv.Run(ctx, newRouter(log, sessions, provider, readiness...))
}
