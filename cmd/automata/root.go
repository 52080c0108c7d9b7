package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/automata/internal/cli"
	"github.com/aretw0/automata/pkg/registry"
	"github.com/aretw0/automata/pkg/runner"
	"github.com/aretw0/automata/pkg/session"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "automata",
	Short: "Step through NFA, DFA and Turing machine simulations",
	Long: `automata loads automaton definitions (YAML, JSON or Markdown with frontmatter)
and simulates them one input symbol at a time, forward and backward, from the
terminal, over HTTP or as MCP tools. Without --defs the builtin examples are used.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("defs", "", "Directory of automaton definitions (builtins when empty)")
	flags.Bool("debug", false, "Log debug events to stderr")
	flags.String("store", cli.StoreFile, "Session store: memory, file or redis")
	flags.String("session-dir", cli.DefaultSessionDir, "Directory of the file session store")
	flags.String("redis-addr", "localhost:6379", "Redis address for --store=redis")
	flags.String("redis-password", "", "Redis password")
	flags.Int("redis-db", 0, "Redis database")
	flags.Duration("redis-ttl", 0, "Expire idle Redis sessions after this long (0 keeps them)")
	flags.String("encryption-key", os.Getenv(cli.EnvEncryptionKey), "AES-256 key (base64 or hex) sealing stored sessions")
	flags.Int("max-steps", runner.DefaultMaxSteps, "Step budget for running to completion")
}

func loadRegistry(cmd *cobra.Command) (*registry.Registry, error) {
	dir, _ := cmd.Flags().GetString("defs")
	return cli.OpenRegistry(cmd.Context(), dir)
}

func storeOptions(cmd *cobra.Command) cli.StoreOptions {
	flags := cmd.Flags()
	kind, _ := flags.GetString("store")
	dir, _ := flags.GetString("session-dir")
	addr, _ := flags.GetString("redis-addr")
	password, _ := flags.GetString("redis-password")
	db, _ := flags.GetInt("redis-db")
	ttl, _ := flags.GetDuration("redis-ttl")
	key, _ := flags.GetString("encryption-key")
	return cli.StoreOptions{
		Kind:          kind,
		SessionDir:    dir,
		RedisAddr:     addr,
		RedisPassword: password,
		RedisDB:       db,
		RedisTTL:      ttl,
		EncryptionKey: key,
	}
}

func openManager(cmd *cobra.Command) (*session.Manager, func() error, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	return cli.OpenManager(storeOptions(cmd), cli.NewLogger(debug))
}

func maxSteps(cmd *cobra.Command) int {
	n, _ := cmd.Flags().GetInt("max-steps")
	return n
}

func fail(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	fmt.Fprintln(os.Stderr, "Error:", err)
	return err
}
