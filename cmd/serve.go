package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/abhisek/aitutor/internal/config"
	"github.com/abhisek/aitutor/internal/explain"
	"github.com/abhisek/aitutor/internal/quiz"
	"github.com/abhisek/aitutor/internal/report"
	"github.com/abhisek/aitutor/internal/server"
	"github.com/abhisek/aitutor/internal/session"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides config server.addr)")
}

func runServe(cmd *cobra.Command) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sessionStore(ctx, e)
	if err != nil {
		return err
	}

	shares, err := report.NewShareStore(e.cfg.Share.Dir, e.cfg.Server.BaseURL)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Sessions:    session.NewManager(store),
		Providers:   e.providers,
		Shares:      shares,
		Quiz:        quizConfig(e.cfg),
		Explain:     explain.DefaultConfig(),
		Logger:      e.logger,
		CORSOrigins: e.cfg.Server.CORSOrigins,
		Timeout:     e.cfg.RequestTimeout(),
	})

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = e.cfg.Server.Addr
	}

	// Model calls can take a long time, so only header reads are bounded.
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		e.logger.Info("starting aitutor", "addr", addr, "provider", e.providers.Config().Provider, "sessions", e.cfg.Session.Backend)
		fmt.Fprintf(os.Stderr, "aitutor listening on %s\n", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		e.logger.Info("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// sessionStore builds the configured session backend. The memory backend
// gets a sweeper tied to ctx.
func sessionStore(ctx context.Context, e *env) (session.Store, error) {
	ttl := e.cfg.SessionTTL()

	if e.cfg.Session.Backend == config.BackendRedis {
		client := redis.NewClient(&redis.Options{
			Addr:     e.cfg.Redis.Addr,
			Password: e.cfg.Redis.Password,
			DB:       e.cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect redis %s: %w", e.cfg.Redis.Addr, err)
		}
		context.AfterFunc(ctx, func() { _ = client.Close() })
		return session.NewRedisStore(client, ttl), nil
	}

	mem := session.NewMemoryStore(ttl)
	go mem.RunSweeper(ctx, e.cfg.SweepInterval(), e.logger)
	return mem, nil
}

func quizConfig(cfg config.Config) quiz.Config {
	qc := quiz.DefaultConfig()
	if cfg.Quiz.MaxTokens > 0 {
		qc.MaxTokens = cfg.Quiz.MaxTokens
	}
	qc.Temperature = cfg.Quiz.Temperature
	return qc
}
