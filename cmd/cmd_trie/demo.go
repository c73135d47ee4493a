package cmd_trie

import (
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"slices"

	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/config"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/pkg/x_trie"

	"github.com/spf13/cobra"
)

var (
	demoCount int
	demoSeed  uint64
	demoSpan  int64
)

// walkthroughKeys share low digits at B=32 so the dump shows both sparse and shared paths.
var walkthroughKeys = []uint64{1, 32, 2, 7, 1128369}

// demoCmd dumps a small uint64 set, or fills a service with random keys when --count is set.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Show the trie layout of a few keys, or a random fill summary with --count",
	RunE: func(cmd *cobra.Command, args []string) error {
		if demoCount <= 0 {
			cfg := config.FromContext(cmd.Context())
			walkthrough(cmd.OutOrStdout(), cfg.Branching, cfg.Prune)
			return nil
		}

		if demoSpan < 0 || demoSpan > math.MaxInt64/2 {
			return fmt.Errorf("%w: --span must be in [0, %d]", constant.ErrUsage, int64(math.MaxInt64/2))
		}

		s, err := newService(cmd)
		if err != nil {
			return err
		}

		r := rand.New(rand.NewPCG(demoSeed, demoSeed^0x9e3779b97f4a7c15))
		for i := 0; i < demoCount; i++ {
			k := r.Int64N(2*demoSpan+1) - demoSpan
			s.Put(k, fmt.Sprintf("v%d", i))
		}

		out := cmd.OutOrStdout()
		front, back := s.Ends(3)
		fmt.Fprintln(out, "smallest:")
		for _, e := range front {
			fmt.Fprintln(out, " ", e)
		}
		fmt.Fprintln(out, "largest:")
		for _, e := range back {
			fmt.Fprintln(out, " ", e)
		}

		st := s.Stats()
		fmt.Fprintf(out, "len=%d bf=%d depth=%d storage=%.3f bytes=%d\n",
			st.Len, st.Branching, st.MaxDepth, st.Storage, st.StorageBytes)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			fmt.Fprintln(out, string(codec.MustMarshal(st)))
		}
		return nil
	},
}

func walkthrough(w io.Writer, bf int, prune bool) {
	set := x_trie.SetFrom(slices.Values(walkthroughKeys), x_trie.WithBranching(bf), x_trie.WithPruning(prune))
	set.Dump(w)
	fmt.Fprintf(w, "%v storage=%.4f bytes=%d\n", set, set.Storage(), set.StorageBytes())
}

func init() {
	demoCmd.Flags().IntVarP(&demoCount, "count", "n", 0, "number of random inserts, 0 runs the fixed walkthrough")
	demoCmd.Flags().Uint64Var(&demoSeed, "seed", 1, "random seed")
	demoCmd.Flags().Int64Var(&demoSpan, "span", 1<<20, "keys are drawn from [-span, span]")
	demoCmd.Flags().Bool("json", false, "also print the stats as JSON")
}
