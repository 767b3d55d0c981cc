// Package remote pushes and pulls snapshot archives as OCI artifacts.
//
// Based on go-containerregistry patterns:
// - Authentication via keychain
// - Upload ordering: layers → config → manifest
// - Standard OCI distribution spec
package remote

import "context"

// Remote handles OCI registry operations for snapshot archives.
type Remote interface {
	// Push uploads a snapshot archive to the registry.
	Push(ctx context.Context, snapshot []byte, paths int) error

	// Pull downloads the snapshot archive for the current ref.
	Pull(ctx context.Context) (snapshot []byte, paths int, err error)
}
