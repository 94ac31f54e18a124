package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/config"
	"github.com/abhisek/aitutor/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "aitutor",
	Short: "AI tutor with explanations and generated quizzes",
	Long: "aitutor explains topics with a generative-language model, builds five-question\n" +
		"multiple-choice quizzes on any topic, scores them and keeps a dashboard of results.\n\n" +
		"Run without a subcommand to start the terminal quiz.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runQuiz(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", os.Getenv("AITUTOR_CONFIG"), "Path to YAML config file (AITUTOR_CONFIG)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite request log (overrides AITUTOR_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")

	addQuizFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the config file named by --config and applies the
// environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger from --log-level.
func newLogger(cmd *cobra.Command) (*slog.Logger, error) {
	raw, _ := cmd.Flags().GetString("log-level")
	var level slog.Level
	if err := level.UnmarshalText([]byte(raw)); err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", raw, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then AITUTOR_DB or the config file, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DB != "" {
		return cfg.DB, store.EnsureDir(cfg.DB)
	}
	return store.DefaultDBPath()
}
