package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/config"
	"github.com/abhisek/aitutor/internal/llm"
	"github.com/abhisek/aitutor/internal/store"
)

// env is what every command that talks to a model needs.
type env struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *store.Store
	providers *llm.Factory
}

// openEnv loads config, builds the logger, opens the request log and the
// provider factory. The caller must Close the env.
func openEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	llmCfg := cfg.LLM.WithDiscoveredKey()

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Debug("request log opened", "path", dbPath)

	return &env{
		cfg:       cfg,
		logger:    logger,
		store:     st,
		providers: llm.NewFactory(llmCfg, st.EventRepo()),
	}, nil
}

// provider builds a provider for --api-key, falling back to the
// configured key.
func (e *env) provider(cmd *cobra.Command) (llm.Provider, error) {
	key, _ := cmd.Flags().GetString("api-key")
	return e.providers.Provider(cmd.Context(), key)
}

func (e *env) Close() error {
	return e.store.Close()
}
