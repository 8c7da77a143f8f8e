package bootstrap

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-arcade/guild/internal/engine/config"
	"github.com/go-arcade/guild/internal/engine/model"
	"github.com/go-arcade/guild/internal/engine/router"
	"github.com/go-arcade/guild/pkg/database"
	"github.com/go-arcade/guild/pkg/log"
	"github.com/gofiber/fiber/v2"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	HttpApp *fiber.App
	Logger  *zap.Logger
	DB      database.IDatabase
	AppConf *config.AppConfig
	Tracer  *sdktrace.TracerProvider
}

// InitAppFunc init app function type
type InitAppFunc func(configPath string) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *zap.Logger,
	db database.IDatabase,
	appConf *config.AppConfig,
	tp *sdktrace.TracerProvider,
) (*App, func(), error) {
	app := &App{
		HttpApp: rt.Router(),
		Logger:  logger,
		DB:      db,
		AppConf: appConf,
		Tracer:  tp,
	}
	cleanup := func() {
		_ = log.Sync()
	}
	return app, cleanup, nil
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	app, cleanup, err := initApp(configFile)
	if err != nil {
		return nil, nil, err
	}
	return app, cleanup, nil
}

// Migrate creates or updates every table
func (a *App) Migrate() error {
	if err := database.Migrate(a.DB, model.Tables()...); err != nil {
		return err
	}
	log.Infow("database migrated", "driver", a.AppConf.Database.Driver)
	return nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) error {
	httpConf := app.AppConf.Http

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	serveErr := make(chan error, 1)
	go func() {
		addr := httpConf.Addr()
		log.Infow("HTTP listener started",
			"address", addr,
		)
		var err error
		if httpConf.TLS.CertFile != "" && httpConf.TLS.KeyFile != "" {
			err = app.HttpApp.ListenTLS(addr, httpConf.TLS.CertFile, httpConf.TLS.KeyFile)
		} else {
			err = app.HttpApp.Listen(addr)
		}
		serveErr <- err
	}()

	var runErr error
	select {
	case sig := <-quit:
		log.Infow("received signal, shutting down gracefully", "signal", sig.String())
	case err := <-serveErr:
		if err != nil {
			log.Errorw("HTTP listener failed", "error", err)
			runErr = err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(httpConf.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	} else {
		log.Info("HTTP server shut down gracefully")
	}

	// close database and cache connections
	cleanup()

	log.Info("Server shutdown complete")
	return runErr
}
