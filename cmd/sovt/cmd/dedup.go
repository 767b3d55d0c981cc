package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/Tillerino/sovt"
)

var dedupCmd = &cobra.Command{
	Use:   "dedup [file]",
	Short: "Report deduplication statistics for a path list",
	Long:  "Intern every path from the input (stdin by default) and report how many tree nodes the shared prefixes collapse into.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDedup,
}

func init() {
	dedupCmd.Flags().Int("jobs", 4, "parallel interning goroutines")
	rootCmd.AddCommand(dedupCmd)
}

func runDedup(cmd *cobra.Command, args []string) error {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}
	paths, err := readPaths(input)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")

	var mu sync.Mutex
	segments := 0
	// Nodes are weakly cached, so hold them strongly until the stats are
	// printed.
	seen := make(map[*sovt.Node]struct{})

	p := pool.New().WithMaxGoroutines(jobs).WithErrors()
	for _, path := range paths {
		p.Go(func() error {
			n, err := sovt.FromPath(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			mu.Lock()
			segments += n.Depth()
			for v := n; v != nil; v = v.Parent() {
				seen[v] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return err
	}

	saved := segments - len(seen)
	ratio := 0.0
	if segments > 0 {
		ratio = float64(saved) / float64(segments) * 100
	}

	fmt.Fprintf(os.Stderr, "[dedup] %d paths, %d segments\n", len(paths), segments)
	fmt.Printf("paths:    %d\n", len(paths))
	fmt.Printf("segments: %d\n", segments)
	fmt.Printf("nodes:    %d\n", len(seen))
	fmt.Printf("saved:    %d (%.1f%%)\n", saved, ratio)
	return nil
}
