package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tillerino/sovt"
)

var packCmd = &cobra.Command{
	Use:   "pack [file]",
	Short: "Pack a path list into a snapshot archive",
	Long:  "Intern every path from the input (stdin by default) and write the set as a compressed snapshot archive.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPack,
}

func init() {
	packCmd.Flags().StringP("output", "o", "paths.sovt", "output snapshot file")
	rootCmd.AddCommand(packCmd)
}

func runPack(cmd *cobra.Command, args []string) (err error) {
	input := ""
	if len(args) > 0 {
		input = args[0]
	}
	paths, err := readPaths(input)
	if err != nil {
		return err
	}

	nodes := make([]*sovt.Node, 0, len(paths))
	for _, path := range paths {
		n, err := sovt.FromPath(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		nodes = append(nodes, n)
	}

	output, _ := cmd.Flags().GetString("output")
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	if err := sovt.WriteSnapshot(f, nodes); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	fmt.Fprintf(os.Stderr, "[pack] %d paths -> %s\n", len(nodes), output)
	return nil
}
