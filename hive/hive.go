package hive

import (
	"fmt"
	"os"
	"strings"
)

// Hive is an opened hive held entirely in memory. It is safe for concurrent
// readers; nothing mutates the buffer after Open.
type Hive struct {
	data []byte
	base BaseBlock
	path string
}

// Open reads the hive file at path. The file is read once and closed; the
// hive is never written back.
func Open(path string) (*Hive, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("hive: empty hive file: %s", path)
	}
	h, err := FromBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	h.path = path
	return h, nil
}

// FromBytes wraps an in-memory hive image. The slice must not be modified
// while the Hive is in use.
func FromBytes(data []byte) (*Hive, error) {
	bb, err := ParseBaseBlock(data)
	if err != nil {
		return nil, err
	}
	if err := bb.ValidateSanity(len(data)); err != nil {
		return nil, err
	}
	// Trailing slack past the logical end is ignored.
	if end := bb.HiveLength(); end < len(data) {
		data = data[:end]
	}
	return &Hive{data: data, base: bb}, nil
}

// Close releases the hive buffer.
func (h *Hive) Close() error {
	h.data = nil
	return nil
}

// Path returns the file the hive was opened from, if any.
func (h *Hive) Path() string { return h.path }

// Base returns the REGF header view.
func (h *Hive) Base() BaseBlock { return h.base }

// Bytes returns the hive image.
func (h *Hive) Bytes() []byte { return h.data }

// Root returns the hive's root key.
func (h *Hive) Root() (Key, error) {
	if h.data == nil {
		return Key{}, ErrClosed
	}
	return h.keyAt(h.base.RootCellOffset())
}

// Find walks a backslash-separated path from the root. Empty segments are
// ignored, so leading and trailing separators are harmless.
func (h *Hive) Find(path string) (Key, error) {
	k, err := h.Root()
	if err != nil {
		return Key{}, err
	}
	for _, seg := range strings.Split(path, `\`) {
		if seg == "" {
			continue
		}
		if k, err = k.Subkey(seg); err != nil {
			return Key{}, err
		}
	}
	return k, nil
}

func (h *Hive) keyAt(rel uint32) (Key, error) {
	payload, err := resolveRelCellPayload(h.data, rel)
	if err != nil {
		return Key{}, err
	}
	nk, err := ParseNK(payload)
	if err != nil {
		return Key{}, fmt.Errorf("hive: key at 0x%X: %w", rel, err)
	}
	return Key{h: h, off: rel, nk: nk}, nil
}

func (h *Hive) valueAt(rel uint32) (Value, error) {
	payload, err := resolveRelCellPayload(h.data, rel)
	if err != nil {
		return Value{}, err
	}
	vk, err := ParseVK(payload)
	if err != nil {
		return Value{}, fmt.Errorf("hive: value at 0x%X: %w", rel, err)
	}
	return Value{h: h, vk: vk}, nil
}
