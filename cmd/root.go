package cmd

import (
	"fmt"
	"os"

	"github.com/rskv-p/rtrie/cmd/cmd_trie"
	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/pkg/x_log"

	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	branching  int
	prune      bool
	devMode    bool
)

var rootCmd = &cobra.Command{
	Use:           "rtrie",
	Short:         "Radix trie map for integer keys",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		x_log.InitWithConfig(logConfig(cfg), "rtrie")
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = x_log.Close()
	},
}

// logConfig maps the app config onto x_log. Dev mode forces debug output to the console.
func logConfig(cfg *config.Config) *x_log.Config {
	lc := &x_log.Config{
		Level:     cfg.LogLevel,
		Style:     cfg.LogStyle,
		ToConsole: true,
		ToFile:    cfg.LogFile != "",
		LogFile:   cfg.LogFile,
	}
	if cfg.DevMode {
		lc.Level = "debug"
		lc.ToFile = false
	}
	return lc
}

// loadConfig reads the config file and RTRIE_* env, then applies flags that were set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	opts := config.Sources(configPath)

	flags := map[string]any{}
	if cmd.Flags().Changed("log-level") {
		flags["log_level"] = logLevel
	}
	if cmd.Flags().Changed("branching") {
		flags["branching"] = branching
	}
	if cmd.Flags().Changed("prune") {
		flags["prune"] = prune
	}
	if cmd.Flags().Changed("dev") {
		flags["dev_mode"] = devMode
	}
	opts = append(opts, config.WithDefaults(flags))

	cfg, err := config.New(opts...)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "JSON config file (default $RTRIE_CONFIG)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")
	pf.IntVarP(&branching, "branching", "b", 32, "children per node, at least 2")
	pf.BoolVar(&prune, "prune", false, "remove emptied nodes instead of keeping them")
	pf.BoolVar(&devMode, "dev", false, "debug logging to the console only")

	for _, c := range cmd_trie.Commands() {
		rootCmd.AddCommand(c)
	}
}
