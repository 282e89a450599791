package hive

import (
	"fmt"

	"github.com/joshuapare/gogscan/internal/format"
)

// SubkeyListKind identifies the variant of a subkey index cell.
type SubkeyListKind int

const (
	ListUnknown SubkeyListKind = iota
	ListLI
	ListLF
	ListLH
	ListRI
)

// DetectListKind inspects the signature of a subkey index payload.
func DetectListKind(payload []byte) SubkeyListKind {
	switch {
	case hasSignature(payload, format.LISignature):
		return ListLI
	case hasSignature(payload, format.LFSignature):
		return ListLF
	case hasSignature(payload, format.LHSignature):
		return ListLH
	case hasSignature(payload, format.RISignature):
		return ListRI
	default:
		return ListUnknown
	}
}

// maxRIDepth bounds ri nesting. Windows only ever writes one level; anything
// deeper is corruption and would otherwise allow unbounded recursion.
const maxRIDepth = 2

// subkeyOffsets returns the NK offsets referenced by the index cell at
// listRef, in on-disk order.
func subkeyOffsets(hiveBuf []byte, listRef uint32) ([]uint32, error) {
	if listRef == 0 || listRef == format.InvalidOffset {
		return nil, nil
	}
	return appendSubkeyOffsets(hiveBuf, listRef, nil, 0)
}

func appendSubkeyOffsets(hiveBuf []byte, listRef uint32, dst []uint32, depth int) ([]uint32, error) {
	payload, err := resolveRelCellPayload(hiveBuf, listRef)
	if err != nil {
		return nil, fmt.Errorf("hive: subkey list: %w", err)
	}
	if len(payload) < format.IdxMinHeader {
		return nil, fmt.Errorf("hive: subkey list header truncated: %d", len(payload))
	}
	count := int(format.ReadU16(payload, format.IdxCountOffset))

	kind := DetectListKind(payload)
	entrySize := format.LIEntrySize
	switch kind {
	case ListLF, ListLH:
		entrySize = format.LFFHEntrySize
	case ListLI, ListRI:
	case ListUnknown:
		return nil, fmt.Errorf("hive: unknown subkey list signature: %q", payload[:format.SignatureSize])
	}

	need := format.IdxListOffset + count*entrySize
	if len(payload) < need {
		return nil, fmt.Errorf("hive: subkey list truncated: have=%d need=%d", len(payload), need)
	}

	for i := range count {
		off := format.ReadU32(payload, format.IdxListOffset+i*entrySize)
		if kind != ListRI {
			dst = append(dst, off)
			continue
		}
		if depth >= maxRIDepth {
			return nil, fmt.Errorf("hive: ri nesting deeper than %d", maxRIDepth)
		}
		dst, err = appendSubkeyOffsets(hiveBuf, off, dst, depth+1)
		if err != nil {
			return nil, err
		}
	}
	return dst, nil
}

// valueOffsets returns the VK offsets of a value list. The value list has no
// signature; it is a bare array of count uint32 cell indexes.
func valueOffsets(hiveBuf []byte, listRef uint32, count int) ([]uint32, error) {
	if count == 0 || listRef == 0 || listRef == format.InvalidOffset {
		return nil, nil
	}
	payload, err := resolveRelCellPayload(hiveBuf, listRef)
	if err != nil {
		return nil, fmt.Errorf("hive: value list: %w", err)
	}
	if need := count * format.DWORDSize; len(payload) < need {
		return nil, fmt.Errorf("hive: value list too small: need %d bytes for %d values, have %d",
			need, count, len(payload))
	}
	offs := make([]uint32, count)
	for i := range offs {
		offs[i] = format.ReadU32(payload, i*format.DWORDSize)
	}
	return offs, nil
}
