package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/simulacrum/internal/config"
	redisclient "github.com/KirkDiggler/simulacrum/internal/redis"
)

// dialFunc opens the document store for a configuration
type dialFunc func(cfg *config.Config) (redisclient.Client, error)

func dialRedis(cfg *config.Config) (redisclient.Client, error) {
	return redisclient.NewClient(cfg.RedisAddr, &redisclient.Options{
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
}

// cli carries the state shared by every subcommand
type cli struct {
	dial dialFunc

	// Flags overriding the environment
	redisAddr string
	packsDir  string
	logLevel  string
	timeout   time.Duration

	cfg *config.Config
	app *app
}

func newRootCmd(dial dialFunc) *cobra.Command {
	c := &cli{dial: dial}

	root := &cobra.Command{
		Use:   "simulacrum",
		Short: "Simulacrum ruleset document tool",
		Long: `Simulacrum manages actors and items of the simulacrum ruleset: derived
attributes, equipping skills and tools with their actions, and action rolls.`,
		SilenceUsage:       true,
		PersistentPreRunE:  c.setup,
		PersistentPostRunE: c.teardown,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.redisAddr, "redis", "", "Redis address (overrides SIMULACRUM_REDIS_ADDR)")
	pf.StringVar(&c.packsDir, "packs", "", "Compendium pack directory (overrides SIMULACRUM_PACKS_DIR)")
	pf.StringVar(&c.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides SIMULACRUM_LOG_LEVEL)")
	pf.DurationVar(&c.timeout, "timeout", 0, "Operation timeout (overrides SIMULACRUM_TIMEOUT)")

	root.AddCommand(c.actorCmd())
	root.AddCommand(c.itemCmd())
	root.AddCommand(c.rollCmd())
	root.AddCommand(c.chatCmd())

	return root
}

func (c *cli) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("redis") {
		cfg.RedisAddr = c.redisAddr
	}
	if flags.Changed("packs") {
		cfg.PacksDir = c.packsDir
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = c.logLevel
	}
	if flags.Changed("timeout") {
		cfg.Timeout = c.timeout
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	})))

	client, err := c.dial(cfg)
	if err != nil {
		return fmt.Errorf("failed to create redis client: %w", err)
	}
	if err := redisclient.Ping(cmd.Context(), client, cfg.Timeout); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to reach redis at %s: %w", cfg.RedisAddr, err)
	}

	a, err := newApp(cfg, client)
	if err != nil {
		_ = client.Close()
		return err
	}
	c.app = a

	return nil
}

func (c *cli) teardown(_ *cobra.Command, _ []string) error {
	if c.app == nil {
		return nil
	}
	return c.app.Close()
}

// context bounds one command by the configured timeout
func (c *cli) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), c.cfg.Timeout)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
