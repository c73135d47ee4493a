package cmd_trie

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_client"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_nats"

	"github.com/spf13/cobra"
)

var (
	remoteURL     string
	remoteToken   string
	remoteNatsURL string
	remoteReverse bool
	remoteLimit   int
)

// remoteCmd groups the client commands for a running "rtrie serve".
var remoteCmd = &cobra.Command{
	Use:   "remote",
	Short: "Talk to a running trie server",
}

func client(cmd *cobra.Command) *trie_client.RESTClient {
	url := remoteURL
	if url == "" {
		url = "http://" + config.FromContext(cmd.Context()).Addr
	}
	c := trie_client.NewRESTClient(strings.TrimSuffix(url, "/"))
	c.Token = remoteToken
	return c
}

var remoteGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value under key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := codec.ParseKey(args[0])
		if err != nil {
			return err
		}
		e, err := client(cmd).Get(cmd.Context(), k)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), e.Value)
		return nil
	},
}

var remotePutCmd = &cobra.Command{
	Use:   "put <key> <value...>",
	Short: "Store a value under key",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := codec.ParseKey(args[0])
		if err != nil {
			return err
		}
		res, err := client(cmd).Put(cmd.Context(), k, strings.Join(args[1:], " "))
		if err != nil {
			return err
		}
		if res.Replaced {
			fmt.Fprintln(cmd.OutOrStdout(), "replaced", res.Previous)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
		}
		return nil
	},
}

var remoteDelCmd = &cobra.Command{
	Use:   "del <key>",
	Short: "Remove key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		k, err := codec.ParseKey(args[0])
		if err != nil {
			return err
		}
		e, err := client(cmd).Delete(cmd.Context(), k)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), e.Value)
		return nil
	},
}

var remoteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries in key order",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := client(cmd).List(cmd.Context(), remoteReverse, remoteLimit)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		return nil
	},
}

var remoteStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print server statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := client(cmd).Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(codec.MustMarshal(st)))
		return nil
	},
}

var remoteLoginCmd = &cobra.Command{
	Use:   "login <user> <password>",
	Short: "Print a token for --token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := client(cmd).Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

// remoteExecCmd sends one shell line over NATS.
var remoteExecCmd = &cobra.Command{
	Use:   "exec <command...>",
	Short: "Run a shell command on the server over NATS",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.FromContext(cmd.Context())
		url := remoteNatsURL
		if url == "" {
			url = cfg.NatsURL
		}
		if url == "" {
			return fmt.Errorf("%w: --nats or nats_url required", constant.ErrUsage)
		}
		c, err := trie_nats.Dial(url, cfg.NatsSubject)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		out, err := c.Exec(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Fprintln(cmd.OutOrStdout(), out)
		}
		return nil
	},
}

func init() {
	remoteCmd.PersistentFlags().StringVarP(&remoteURL, "url", "u", "", "server URL (default http://<config addr>)")
	remoteCmd.PersistentFlags().StringVarP(&remoteToken, "token", "t", "", "bearer token from \"remote login\"")
	remoteExecCmd.Flags().StringVar(&remoteNatsURL, "nats", "", "NATS URL (default nats_url)")
	remoteListCmd.Flags().BoolVarP(&remoteReverse, "reverse", "r", false, "descending order")
	remoteListCmd.Flags().IntVarP(&remoteLimit, "limit", "l", 0, "maximum entries")

	remoteCmd.AddCommand(remoteGetCmd, remotePutCmd, remoteDelCmd, remoteListCmd, remoteStatsCmd,
		remoteLoginCmd, remoteExecCmd)
}
