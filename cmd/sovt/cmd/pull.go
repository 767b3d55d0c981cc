package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tillerino/sovt/internal/remote"
)

var pullCmd = &cobra.Command{
	Use:   "pull <ref>",
	Short: "Pull a snapshot archive from an OCI registry",
	Args:  cobra.ExactArgs(1),
	RunE:  runPull,
}

func init() {
	pullCmd.Flags().StringP("output", "o", "paths.sovt", "output snapshot file")
	rootCmd.AddCommand(pullCmd)
}

func runPull(cmd *cobra.Command, args []string) error {
	r, err := remote.New(args[0], remote.NewDefaultAuthenticator())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Pulling %s...\n", r)
	data, paths, err := r.Pull(context.Background())
	if err != nil {
		return fmt.Errorf("pull failed: %w", err)
	}

	output, _ := cmd.Flags().GetString("output")
	if err := os.WriteFile(output, data, 0644); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Done. %d paths -> %s\n", paths, output)
	return nil
}
