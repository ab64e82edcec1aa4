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

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nhle/workspace-management/internal/ai"
	"github.com/nhle/workspace-management/internal/model"
	"github.com/nhle/workspace-management/internal/orchestration"
	"github.com/nhle/workspace-management/internal/server"
	"github.com/nhle/workspace-management/internal/store"
)

func loadConfig(cmd *cobra.Command) (*model.AppConfig, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = model.DefaultConfigPath()
	}
	return model.LoadConfig(path)
}

func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
}

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := newLogger()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
				cfg.Server.Addr = addr
			}
			if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
				cfg.Server.DBPath = dbPath
			}

			st, err := store.NewSQLiteStore(cfg.Server.DBPath)
			if err != nil {
				return fmt.Errorf("opening store: %w", err)
			}
			defer st.Close()

			// The API key always comes from the environment; the config
			// file only carries provider and model defaults.
			aiCfg := ai.ConfigFromEnv()
			if cfg.AI.Provider != "" && os.Getenv(ai.EnvProvider) == "" {
				aiCfg.Provider = cfg.AI.Provider
			}
			if cfg.AI.Model != "" && os.Getenv(ai.EnvModel) == "" {
				aiCfg.Model = cfg.AI.Model
			}
			if cfg.AI.MaxTokens > 0 {
				aiCfg.MaxTokens = cfg.AI.MaxTokens
			}

			var client ai.Client
			if aiCfg.Configured() {
				client, err = ai.NewClient(aiCfg)
				if err != nil {
					return fmt.Errorf("building ai client: %w", err)
				}
				logger.Info().Str("provider", aiCfg.Provider).Str("model", aiCfg.Model).Msg("language model configured")
			} else {
				logger.Warn().Msg("no language model configured, keyword handling only")
			}

			orch := orchestration.New(st, client, nil,
				orchestration.OptionsFromConfig(cfg.Orchestration), logger)
			srv := server.New(cfg.Server.Addr, st, orch, logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
				logger.Info().Msg("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides config)")
	cmd.Flags().String("db", "", "sqlite database path (overrides config)")
	return cmd
}
