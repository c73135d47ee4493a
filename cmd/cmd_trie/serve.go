package cmd_trie

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/pkg/x_log"
	"github.com/rskv-p/rtrie/recover"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_api"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_nats"

	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveNatsPort int
)

// serveCmd exposes a trie over HTTP, and over NATS when configured, until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve [script...]",
	Short: "Serve a trie over the REST API, optionally seeded from scripts",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := *config.FromContext(cmd.Context())
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		if cmd.Flags().Changed("nats-port") {
			cfg.NatsPort = serveNatsPort
		}

		s, err := newService(cmd)
		if err != nil {
			return err
		}
		if err := runScripts(s, args, os.Stderr); err != nil {
			return err
		}

		if cfg.NatsURL != "" || cfg.NatsPort != 0 {
			ep, err := trie_nats.Start(s, &cfg)
			if err != nil {
				return err
			}
			defer ep.Close()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		x_log.Info().Int("len", s.Stats().Len).Msg("serving trie")
		serve := recover.WrapRecover("serve", "rest", func(ctx context.Context) error {
			return trie_api.ServeREST(ctx, cfg.Addr, s, trie_api.NewAuth(&cfg))
		})
		return serve(ctx)
	},
}

// hashCmd prints the bcrypt hash to put in api_password_hash.
var hashCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print a bcrypt hash for the api_password_hash setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := trie_api.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")
	serveCmd.Flags().IntVar(&serveNatsPort, "nats-port", 0, "embed a NATS server on this port, -1 picks one")
}
