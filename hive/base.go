package hive

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/gogscan/internal/format"
)

// BaseBlock represents the 4KiB REGF header at the start of the hive.
// Zero-copy: all accessors read directly from b.raw.
type BaseBlock struct {
	raw []byte // len == format.HeaderSize
}

// ParseBaseBlock validates the signature and returns a header view.
func ParseBaseBlock(b []byte) (BaseBlock, error) {
	if len(b) < format.HeaderSize {
		return BaseBlock{}, fmt.Errorf("hive: file too small for REGF header (%d)", len(b))
	}
	sig := b[format.REGFSignatureOffset : format.REGFSignatureOffset+format.REGFSignatureSize]
	if !bytes.Equal(sig, format.REGFSignature) {
		return BaseBlock{}, ErrNotHive
	}
	return BaseBlock{raw: b[:format.HeaderSize]}, nil
}

// Sequence1 returns the primary sequence number.
func (bb BaseBlock) Sequence1() uint32 { return format.ReadU32(bb.raw, format.REGFPrimarySeqOffset) }

// Sequence2 returns the secondary sequence number.
func (bb BaseBlock) Sequence2() uint32 { return format.ReadU32(bb.raw, format.REGFSecondarySeqOffset) }

// IsClean reports whether both sequence numbers match. A dirty hive was
// copied while Windows still had pending writes in its transaction logs; it
// is readable but may be missing the latest changes.
func (bb BaseBlock) IsClean() bool { return bb.Sequence1() == bb.Sequence2() }

// Major returns the major format version.
func (bb BaseBlock) Major() uint32 { return format.ReadU32(bb.raw, format.REGFMajorVersionOffset) }

// Minor returns the minor format version.
func (bb BaseBlock) Minor() uint32 { return format.ReadU32(bb.raw, format.REGFMinorVersionOffset) }

// RootCellOffset returns the root NK offset relative to 0x1000.
func (bb BaseBlock) RootCellOffset() uint32 {
	return format.ReadU32(bb.raw, format.REGFRootCellOffset)
}

// DataSize returns the size of the HBIN area.
func (bb BaseBlock) DataSize() uint32 { return format.ReadU32(bb.raw, format.REGFDataSizeOffset) }

// HiveLength reports hive length = 4K header + DataSize.
func (bb BaseBlock) HiveLength() int { return format.HeaderSize + int(bb.DataSize()) }

// ChecksumOK compares the stored header checksum with the computed one.
func (bb BaseBlock) ChecksumOK() bool {
	return format.Checksum(bb.raw) == format.ReadU32(bb.raw, format.REGFCheckSumOffset)
}

// ValidateSanity checks the header against the actual file size. The
// checksum is not checked here; use ChecksumOK for that.
func (bb BaseBlock) ValidateSanity(fileSize int) error {
	if reported := bb.HiveLength(); reported > fileSize {
		return fmt.Errorf("hive: reported hive length (%d) > file size (%d)", reported, fileSize)
	}
	root := bb.RootCellOffset()
	if root == 0 || root == format.InvalidOffset {
		return fmt.Errorf("hive: invalid root cell offset 0x%X", root)
	}
	if rootAbs := format.HiveDataBase + int(root); rootAbs >= fileSize {
		return fmt.Errorf("hive: root cell (%d) beyond file size (%d)", rootAbs, fileSize)
	}
	if major := bb.Major(); major != 1 {
		return fmt.Errorf("hive: unsupported major version %d (expected 1)", major)
	}
	return nil
}
