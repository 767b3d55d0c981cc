package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tillerino/sovt"
	"github.com/Tillerino/sovt/internal/remote"
)

var pushCmd = &cobra.Command{
	Use:   "push <ref> <file>",
	Short: "Push a snapshot archive to an OCI registry",
	Long:  "Upload a snapshot archive created with pack to an OCI registry ref.",
	Args:  cobra.ExactArgs(2),
	RunE:  runPush,
}

func init() {
	rootCmd.AddCommand(pushCmd)
}

func runPush(cmd *cobra.Command, args []string) error {
	ref, file := args[0], args[1]

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	// Validate and count before uploading.
	nodes, err := sovt.ReadSnapshot(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}

	r, err := remote.New(ref, remote.NewDefaultAuthenticator())
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Pushing %s (%d paths)...\n", r, len(nodes))
	if err := r.Push(context.Background(), data, len(nodes)); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}

	fmt.Fprintln(os.Stderr, "Done.")
	return nil
}
