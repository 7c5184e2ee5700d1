// chatstorectl is a small operator CLI for the chat persistence layer. It is
// external tooling: the core store packages know nothing about it.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/codeu/chatstore/internal/config"
	"github.com/codeu/chatstore/internal/entitystore"
	"github.com/codeu/chatstore/internal/factory"
	platformlogger "github.com/codeu/chatstore/internal/platform/logger"
	"github.com/codeu/chatstore/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "chatstorectl",
	Short: "Inspect and smoke-test the chat persistence backing store",
}

func main() {
	logger := platformlogger.New("chatstorectl")
	log.Logger = logger

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Ping the configured backing store",
			RunE: func(cmd *cobra.Command, args []string) error {
				es, err := openStore(cmd.Context())
				if err != nil {
					return err
				}
				p, ok := es.(entitystore.Pinger)
				if !ok {
					return fmt.Errorf("configured driver does not support ping")
				}
				if err := p.Ping(cmd.Context()); err != nil {
					return fmt.Errorf("backing store unreachable: %w", err)
				}
				fmt.Println("ok")
				return nil
			},
		},
		&cobra.Command{
			Use:   "stats",
			Short: "Print per-kind record counts",
			RunE: func(cmd *cobra.Command, args []string) error {
				es, err := openStore(cmd.Context())
				if err != nil {
					return err
				}
				return runStats(cmd.Context(), store.New(es), os.Stdout)
			},
		},
		&cobra.Command{
			Use:   "seed",
			Short: "Write a small demo data set for local smoke testing",
			RunE: func(cmd *cobra.Command, args []string) error {
				es, err := openStore(cmd.Context())
				if err != nil {
					return err
				}
				return runSeed(cmd.Context(), store.New(es))
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openStore(ctx context.Context) (entitystore.Store, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.New()
	if err != nil {
		return nil, err
	}
	log.Info().Str("driver", cfg.Driver).Msg("opening backing store")
	return factory.NewEntityStore(ctx, cfg, log.Logger)
}
