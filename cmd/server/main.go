package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	gfshutdown "github.com/gelmium/graceful-shutdown"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/umakossiooo/to-do-app/internal/config"
	"github.com/umakossiooo/to-do-app/internal/serverapp"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	logger, err := cfg.Log.NewLogger(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	handler, err := serverapp.NewHandler(serverapp.Options{
		Config: cfg,
		Logger: logger,
	})
	if err != nil {
		logger.WithError(err).Fatal("build server")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.WithField("addr", cfg.Server.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("listen")
		}
	}()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.Server.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"http-server": func(ctx context.Context) error {
				logger.Info("shutting down")
				return srv.Shutdown(ctx)
			},
		},
	)

	code := <-wait
	logger.WithField("code", code).Info("exited")
	os.Exit(code)
}

// loadConfig layers the YAML file, TODO_* environment variables and flags,
// in that order.
func loadConfig(args []string) (*config.Config, error) {
	var (
		path     string
		addr     string
		logLevel string
	)
	flagSet := pflag.NewFlagSet("to-do-app", pflag.ContinueOnError)
	flagSet.StringVarP(&path, "config", "c", "todo_config.yml", "path to the YAML config file")
	flagSet.StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	flagSet.StringVar(&logLevel, "log-level", "", "log level (overrides log.level)")
	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if extra := flagSet.Args(); len(extra) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", extra[0])
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg.ApplyEnv()
	if addr != "" {
		cfg.Server.Addr = addr
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if _, err := log.ParseLevel(cfg.Log.Level); err != nil {
		return nil, fmt.Errorf("log.level: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
