package sovt

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Wire format: {count:4bytes}{segment...} with each segment encoded as
// {len:2bytes}{name}, root to leaf, all BigEndian. The format is fixed and
// carries no version field.

// Encode writes the node's segment sequence to w.
func Encode(w io.Writer, n *Node) error {
	names := pathNames(n)
	if err := binary.Write(w, binary.BigEndian, uint32(len(names))); err != nil {
		return err
	}
	for _, name := range names {
		if len(name) > math.MaxUint16 {
			return fmt.Errorf("sovt: segment of %d bytes exceeds wire format", len(name))
		}
		if err := binary.Write(w, binary.BigEndian, uint16(len(name))); err != nil {
			return err
		}
		if _, err := io.WriteString(w, name); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads one encoded node from r and re-interns it segment by
// segment. The result is identical to any live node for the same path; if
// none is live, it becomes the new canonical instance.
func Decode(r io.Reader) (*Node, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("sovt: encoded node has no segments")
	}

	var n *Node
	for range count {
		var nameLen uint16
		if err := binary.Read(r, binary.BigEndian, &nameLen); err != nil {
			return nil, err
		}
		buf := make([]byte, nameLen)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}

		var err error
		if n == nil {
			n, err = Root(string(buf))
		} else {
			n, err = n.Child(string(buf))
		}
		if err != nil {
			return nil, err
		}
	}
	return n, nil
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (n *Node) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, n); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalNode decodes a node previously encoded with MarshalBinary or
// Encode. It is a package function rather than an UnmarshalBinary method
// because decoding returns the canonical interned instance instead of
// filling in a caller-allocated node.
func UnmarshalNode(data []byte) (*Node, error) {
	return Decode(bytes.NewReader(data))
}

func pathNames(n *Node) []string {
	names := make([]string, n.Depth())
	for i := len(names) - 1; i >= 0; i-- {
		names[i] = n.name
		n = n.parent
	}
	return names
}
