package hive

import (
	"fmt"

	"github.com/joshuapare/gogscan/internal/format"
)

// NK is a zero-cost view over an "nk" (key node) cell payload.
// It does NOT own memory; it only points into the hive buffer.
type NK struct {
	buf []byte // payload only (starts with "nk")
}

// ParseNK wraps a cell payload as NK and validates the signature.
func ParseNK(payload []byte) (NK, error) {
	if len(payload) < format.NKFixedHeaderSize {
		return NK{}, fmt.Errorf("hive: NK too small: %d", len(payload))
	}
	if !hasSignature(payload, format.NKSignature) {
		return NK{}, fmt.Errorf("hive: NK bad sig: %q", payload[:format.SignatureSize])
	}
	return NK{buf: payload}, nil
}

// Flags returns the NK flags field.
func (n NK) Flags() uint16 { return format.ReadU16(n.buf, format.NKFlagsOffset) }

// LastWriteFILETIME returns the raw last write timestamp (100ns since 1601).
func (n NK) LastWriteFILETIME() uint64 { return format.ReadU64(n.buf, format.NKLastWriteOffset) }

// SubkeyCount returns the stable subkey count.
func (n NK) SubkeyCount() uint32 { return format.ReadU32(n.buf, format.NKSubkeyCountOffset) }

// SubkeyListOffsetRel returns the stable subkey list offset (HCELL_INDEX).
func (n NK) SubkeyListOffsetRel() uint32 { return format.ReadU32(n.buf, format.NKSubkeyListOffset) }

// ValueCount returns the number of values attached to the key.
func (n NK) ValueCount() uint32 { return format.ReadU32(n.buf, format.NKValueCountOffset) }

// ValueListOffsetRel returns the value list offset (HCELL_INDEX).
func (n NK) ValueListOffsetRel() uint32 { return format.ReadU32(n.buf, format.NKValueListOffset) }

// IsCompressedName reports whether the key name is Windows-1252 rather than UTF-16LE.
func (n NK) IsCompressedName() bool { return n.Flags()&format.NKFlagCompressedName != 0 }

// NameLength returns the key name length in bytes.
func (n NK) NameLength() uint16 { return format.ReadU16(n.buf, format.NKNameLenOffset) }

// NameRaw returns the raw key name bytes, or nil when the name overruns the cell.
func (n NK) NameRaw() []byte {
	nl := int(n.NameLength())
	end := format.NKNameOffset + nl
	if nl == 0 || end > len(n.buf) {
		return nil
	}
	return n.buf[format.NKNameOffset:end]
}

// Name decodes the key name to UTF-8.
func (n NK) Name() (string, error) {
	if n.NameLength() > 0 && n.NameRaw() == nil {
		return "", fmt.Errorf("hive: NK name length %d overruns cell", n.NameLength())
	}
	return decodeName(n.NameRaw(), n.IsCompressedName())
}
