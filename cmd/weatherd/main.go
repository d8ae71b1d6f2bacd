package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/awaistahir/skycast/internal/app"
	"github.com/awaistahir/skycast/internal/config"
	"github.com/awaistahir/skycast/internal/store"
	"github.com/awaistahir/skycast/internal/uiapi"
	"github.com/awaistahir/skycast/internal/weather"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	var cfgFile string
	var port int
	var dbPath string
	var dev bool

	rootCmd := &cobra.Command{
		Use:          "weatherd",
		Short:        "Weather HTTP server with web UI",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(dev)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if err := config.LoadEnv(".env"); err != nil {
				logger.Warn("loading .env", zap.Error(err))
			}

			cfg, err := config.Load(viper.GetViper(), cfgFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if dbPath != "" {
				cfg.DBPath = dbPath
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			loc, err := cfg.Zone()
			if err != nil {
				return err
			}

			st, err := store.NewStore(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}

			client := weather.NewClient(cfg.Weather(), logger.Named("weather"))
			a := app.New(client, st,
				app.WithHistory(st),
				app.WithLogger(logger.Named("app")),
				app.WithLocation(loc),
			)
			defer a.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := a.Load(ctx); err != nil {
				logger.Warn("starting with empty recent searches", zap.Error(err))
			}

			srv := uiapi.NewServer(a, st, loc, logger.Named("http"))
			httpServer := &http.Server{
				Addr:              fmt.Sprintf(":%d", cfg.Port),
				Handler:           srv.Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("weather UI server starting",
					zap.Int("port", cfg.Port),
					zap.String("db", cfg.DBPath),
					zap.String("timezone", loc.String()),
				)
				errCh <- httpServer.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return httpServer.Shutdown(shutdownCtx)
		},
	}

	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.skycast/config.yaml)")
	rootCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "Database path")
	rootCmd.Flags().BoolVar(&dev, "dev", false, "Human-readable debug logging")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(dev bool) (*zap.Logger, error) {
	var (
		logger *zap.Logger
		err    error
	)
	if dev {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	return logger, nil
}
