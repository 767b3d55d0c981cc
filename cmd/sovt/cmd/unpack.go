package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tillerino/sovt"
)

var unpackCmd = &cobra.Command{
	Use:   "unpack <file>",
	Short: "List the paths stored in a snapshot archive",
	Args:  cobra.ExactArgs(1),
	RunE:  runUnpack,
}

func init() {
	rootCmd.AddCommand(unpackCmd)
}

func runUnpack(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	nodes, err := sovt.ReadSnapshot(f)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	for _, n := range nodes {
		fmt.Println(n)
	}

	if len(nodes) == 0 {
		fmt.Fprintln(os.Stderr, "(no paths)")
	}
	return nil
}
