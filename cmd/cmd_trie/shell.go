package cmd_trie

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"

	"github.com/spf13/cobra"
)

// shellCmd runs script files, or reads commands from stdin.
var shellCmd = &cobra.Command{
	Use:   "shell [script...]",
	Short: "Run trie commands from scripts or an interactive prompt",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newService(cmd)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if len(args) > 0 {
			return runScripts(s, args, out)
		}
		if f, ok := cmd.InOrStdin().(*os.File); ok && isatty.IsTerminal(f.Fd()) {
			return prompt(s, f, out)
		}
		failed, err := s.Run(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
		if failed > 0 {
			return fmt.Errorf("%d command(s) failed", failed)
		}
		return nil
	},
}

// statsCmd loads scripts quietly and prints the resulting statistics.
var statsCmd = &cobra.Command{
	Use:   "stats [script...]",
	Short: "Load scripts and print trie statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := newService(cmd)
		if err != nil {
			return err
		}
		if err := runScripts(s, args, io.Discard); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(codec.MustMarshal(s.Stats())))
		return nil
	},
}

func runScripts(s *trie_serv.Service, paths []string, out io.Writer) error {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		failed, err := s.Run(f, out)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if failed > 0 {
			return fmt.Errorf("%s: %d command(s) failed", path, failed)
		}
	}
	return nil
}

func prompt(s *trie_serv.Service, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, `rtrie shell, "help" lists commands, "quit" exits`)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "quit" || line == "exit" {
			return nil
		}
		res, err := s.Exec(line)
		if err != nil {
			fmt.Fprintln(out, "ERR", err)
			continue
		}
		if res != "" {
			fmt.Fprintln(out, res)
		}
	}
}
