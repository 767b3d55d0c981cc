package sovt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Tillerino/sovt/internal/compression"
)

// Snapshot format: the 4-byte magic, then a zstd frame containing
// {count:4bytes} followed by count codec-encoded nodes.
var snapshotMagic = [4]byte{'S', 'O', 'V', 'T'}

// WriteSnapshot persists a set of nodes as one compressed archive.
// Restoring with ReadSnapshot re-interns every path, so shared prefixes
// are deduplicated again on the reading side.
func WriteSnapshot(w io.Writer, nodes []*Node) error {
	var payload bytes.Buffer
	if err := binary.Write(&payload, binary.BigEndian, uint32(len(nodes))); err != nil {
		return err
	}
	for _, n := range nodes {
		if err := Encode(&payload, n); err != nil {
			return err
		}
	}

	if _, err := w.Write(snapshotMagic[:]); err != nil {
		return err
	}
	_, err := w.Write(compression.Compress(payload.Bytes()))
	return err
}

// ReadSnapshot restores the nodes of a snapshot written by WriteSnapshot.
func ReadSnapshot(r io.Reader) ([]*Node, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("read snapshot header: %w", err)
	}
	if magic != snapshotMagic {
		return nil, fmt.Errorf("not a sovt snapshot")
	}

	compressed, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	payload, err := compression.Decompress(compressed)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}

	br := bytes.NewReader(payload)
	var count uint32
	if err := binary.Read(br, binary.BigEndian, &count); err != nil {
		return nil, err
	}

	nodes := make([]*Node, 0, count)
	for range count {
		n, err := Decode(br)
		if err != nil {
			return nil, fmt.Errorf("decode snapshot node: %w", err)
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
