package hive

import (
	"errors"
	"fmt"

	"github.com/joshuapare/gogscan/internal/format"
)

// resolveRelCellPayload resolves a relative HCELL offset and returns just
// the payload bytes (skipping the 4-byte size header), bounds-checked.
//
// Cell header layout:
//
//	int32 Size  (negative => allocated; positive => free; absolute value includes header)
//	...payload...
func resolveRelCellPayload(hiveBuf []byte, relOff uint32) ([]byte, error) {
	if relOff == 0 || relOff == format.InvalidOffset {
		return nil, fmt.Errorf("hive: invalid cell offset 0x%X", relOff)
	}
	abs := format.HiveDataBase + int(relOff)
	if abs+format.CellHeaderSize > len(hiveBuf) {
		return nil, fmt.Errorf("hive: cell 0x%X out of range (len=%d)", relOff, len(hiveBuf))
	}
	cell := hiveBuf[abs:]

	size := format.ReadI32(cell, 0)
	if size == 0 {
		return nil, errors.New("hive: cell has zero size")
	}
	total := int(size)
	if total < 0 {
		total = -total // allocated cells store negative size
	}
	if total < format.CellHeaderSize {
		return nil, fmt.Errorf("hive: cell size too small: %d", total)
	}
	if total > len(cell) {
		return nil, fmt.Errorf("hive: cell declared size %d > available %d", total, len(cell))
	}
	return cell[format.CellHeaderSize:total], nil
}

func hasSignature(b []byte, sig []byte) bool {
	return len(b) >= format.SignatureSize && b[0] == sig[0] && b[1] == sig[1]
}
