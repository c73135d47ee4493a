package cmd_trie

import (
	"fmt"

	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"

	"github.com/spf13/cobra"
)

// Commands returns the trie subcommands for the root command.
func Commands() []*cobra.Command {
	return []*cobra.Command{demoCmd, shellCmd, statsCmd, serveCmd, hashCmd, configCmd, remoteCmd}
}

// newService builds a service from the config placed on cmd's context by the root command.
func newService(cmd *cobra.Command) (*trie_serv.Service, error) {
	return trie_serv.New(config.FromContext(cmd.Context()))
}

// configCmd prints the effective configuration after file, env and flags are applied.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Run: func(cmd *cobra.Command, args []string) {
		config.FromContext(cmd.Context()).Dump(cmd.OutOrStdout())
		fmt.Fprintln(cmd.OutOrStdout())
	},
}
