package remote

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	v1 "github.com/google/go-containerregistry/pkg/v1"
	"github.com/google/go-containerregistry/pkg/v1/empty"
	"github.com/google/go-containerregistry/pkg/v1/mutate"
	"github.com/google/go-containerregistry/pkg/v1/remote"
	"github.com/google/go-containerregistry/pkg/v1/types"

	"github.com/Tillerino/sovt/internal/compression"
)

const pathsLabel = "io.sovt.paths"

// OCIRemote stores a snapshot archive as a single-layer OCI image.
type OCIRemote struct {
	ref  name.Reference
	auth Authenticator
}

var _ Remote = (*OCIRemote)(nil)

// New creates a remote from a standard Docker ref (e.g., "ttl.sh/paths/ci:main").
func New(imageRef string, auth Authenticator) (*OCIRemote, error) {
	ref, err := name.ParseReference(imageRef, name.WithDefaultTag("latest"))
	if err != nil {
		return nil, fmt.Errorf("invalid image ref %q: %w", imageRef, err)
	}
	return &OCIRemote{ref: ref, auth: auth}, nil
}

func (r *OCIRemote) String() string   { return r.ref.String() }
func (r *OCIRemote) Registry() string { return r.ref.Context().RegistryStr() }

// snapshotLayer implements v1.Layer with zstd compression for transfer.
type snapshotLayer struct {
	compressed   []byte
	uncompressed []byte
}

func newSnapshotLayer(data []byte) *snapshotLayer {
	return &snapshotLayer{
		compressed:   compression.Compress(data),
		uncompressed: data,
	}
}

func (l *snapshotLayer) Digest() (v1.Hash, error) {
	h, _, err := v1.SHA256(bytes.NewReader(l.compressed))
	return h, err
}

func (l *snapshotLayer) DiffID() (v1.Hash, error) {
	h, _, err := v1.SHA256(bytes.NewReader(l.uncompressed))
	return h, err
}

func (l *snapshotLayer) Compressed() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.compressed)), nil
}

func (l *snapshotLayer) Uncompressed() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(l.uncompressed)), nil
}

func (l *snapshotLayer) Size() (int64, error)                { return int64(len(l.compressed)), nil }
func (l *snapshotLayer) MediaType() (types.MediaType, error) { return types.OCILayerZStd, nil }

// Push uploads the snapshot archive under the configured ref.
func (r *OCIRemote) Push(ctx context.Context, snapshot []byte, paths int) error {
	img, err := mutate.AppendLayers(empty.Image, newSnapshotLayer(snapshot))
	if err != nil {
		return fmt.Errorf("build image: %w", err)
	}

	cfg, err := img.ConfigFile()
	if err != nil {
		return err
	}
	cfg.Config.Labels = map[string]string{pathsLabel: strconv.Itoa(paths)}

	img, err = mutate.ConfigFile(img, cfg)
	if err != nil {
		return err
	}

	_, err = retry(ctx, 3, func() (struct{}, error) {
		return struct{}{}, remote.Write(r.ref, img, r.remoteOptions()...)
	})
	return err
}

// Pull downloads the snapshot archive for the configured ref.
func (r *OCIRemote) Pull(ctx context.Context) ([]byte, int, error) {
	img, err := retry(ctx, 3, func() (v1.Image, error) {
		return remote.Image(r.ref, r.remoteOptions()...)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("fetch image: %w", err)
	}

	cfg, err := img.ConfigFile()
	if err != nil {
		return nil, 0, fmt.Errorf("get config: %w", err)
	}
	paths, _ := strconv.Atoi(cfg.Config.Labels[pathsLabel])

	layers, err := img.Layers()
	if err != nil {
		return nil, 0, fmt.Errorf("get layers: %w", err)
	}
	if len(layers) != 1 {
		return nil, 0, fmt.Errorf("expected 1 snapshot layer, found %d", len(layers))
	}

	rc, err := layers[0].Uncompressed()
	if err != nil {
		return nil, 0, fmt.Errorf("read layer: %w", err)
	}
	data, err := io.ReadAll(rc)
	if cerr := rc.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		return nil, 0, fmt.Errorf("read layer: %w", err)
	}
	return data, paths, nil
}

func (r *OCIRemote) remoteOptions() []remote.Option {
	if r.auth != nil {
		username, password, err := r.auth.Authenticate(r.Registry())
		if err == nil && username != "" {
			return []remote.Option{remote.WithAuth(&authn.Basic{
				Username: username,
				Password: password,
			})}
		}
	}
	return []remote.Option{remote.WithAuthFromKeychain(authn.DefaultKeychain)}
}

func retry[T any](ctx context.Context, maxAttempts int, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for i := range maxAttempts {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if i < maxAttempts-1 {
			delay := time.Duration(1<<i) * 500 * time.Millisecond // 500ms, 1s, 2s...
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return zero, lastErr
}
