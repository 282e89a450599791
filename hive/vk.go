package hive

import (
	"errors"
	"fmt"

	"github.com/joshuapare/gogscan/internal/format"
)

// VK is a zero-cost view over a "vk" (value key) cell payload.
type VK struct {
	buf []byte // payload starting at 'vk'
}

// ParseVK wraps a cell payload as VK and validates the signature.
func ParseVK(payload []byte) (VK, error) {
	if len(payload) < format.VKFixedHeaderSize {
		return VK{}, errors.New("hive: VK truncated header")
	}
	if !hasSignature(payload, format.VKSignature) {
		return VK{}, fmt.Errorf("hive: VK bad sig: %q", payload[:format.SignatureSize])
	}
	return VK{buf: payload}, nil
}

func (v VK) Flags() uint16   { return format.ReadU16(v.buf, format.VKFlagsOffset) }
func (v VK) Type() uint32    { return format.ReadU32(v.buf, format.VKTypeOffset) }
func (v VK) NameLen() uint16 { return format.ReadU16(v.buf, format.VKNameLenOffset) }

// NameCompressed reports whether the value name is Windows-1252 rather than UTF-16LE.
func (v VK) NameCompressed() bool { return v.Flags()&format.VKFlagNameCompressed != 0 }

// NameRaw returns raw name bytes; nil for the default value or a truncated cell.
func (v VK) NameRaw() []byte {
	n := int(v.NameLen())
	end := format.VKNameOffset + n
	if n == 0 || end > len(v.buf) {
		return nil
	}
	return v.buf[format.VKNameOffset:end]
}

// Name decodes the value name. The default value has an empty name.
func (v VK) Name() (string, error) {
	if v.NameLen() > 0 && v.NameRaw() == nil {
		return "", fmt.Errorf("hive: VK name length %d overruns cell", v.NameLen())
	}
	return decodeName(v.NameRaw(), v.NameCompressed())
}

func (v VK) rawDataLen() uint32 { return format.ReadU32(v.buf, format.VKDataLenOffset) }

// IsSmallData reports whether the data lives inline in the offset field.
func (v VK) IsSmallData() bool { return v.rawDataLen()&format.VKSmallDataMask != 0 }

// DataLen returns the value data length in bytes.
func (v VK) DataLen() int { return int(v.rawDataLen() &^ format.VKSmallDataMask) }

// DataOffsetRel returns the HCELL_INDEX of the data cell.
func (v VK) DataOffsetRel() uint32 { return format.ReadU32(v.buf, format.VKDataOffOffset) }

// Data returns the value bytes, handling inline, external and big-data
// storage. hiveBuf must be the whole hive.
func (v VK) Data(hiveBuf []byte) ([]byte, error) {
	n := v.DataLen()
	if n == 0 {
		return nil, nil
	}

	if v.IsSmallData() {
		if n > format.VKMaxInlineData {
			return nil, fmt.Errorf("hive: VK inline data length %d exceeds %d", n, format.VKMaxInlineData)
		}
		raw := v.buf[format.VKDataOffOffset : format.VKDataOffOffset+format.VKMaxInlineData]
		return raw[:n:n], nil
	}

	pl, err := resolveRelCellPayload(hiveBuf, v.DataOffsetRel())
	if err != nil {
		return nil, fmt.Errorf("hive: VK data: %w", err)
	}
	if n > format.DBChunkSize && hasSignature(pl, format.DBSignature) {
		return readBigData(hiveBuf, pl, n)
	}
	if len(pl) < n {
		return nil, fmt.Errorf("hive: VK data truncated: have=%d need=%d", len(pl), n)
	}
	return pl[:n:n], nil
}

// readBigData concatenates the segments of a "db" record. Layout:
//
//	0x00: "db"
//	0x02: Count (uint16)
//	0x04: BlocklistOffset (uint32)  // HCELL_INDEX to an array of segment offsets
func readBigData(hiveBuf, header []byte, n int) ([]byte, error) {
	if len(header) < format.DBHeaderSize {
		return nil, fmt.Errorf("hive: DB header too small: %d", len(header))
	}
	count := int(format.ReadU16(header, format.DBCountOffset))
	if count < format.DBMinBlockCount {
		return nil, fmt.Errorf("hive: DB block count %d invalid (min %d)", count, format.DBMinBlockCount)
	}
	list, err := resolveRelCellPayload(hiveBuf, format.ReadU32(header, format.DBListOffset))
	if err != nil {
		return nil, fmt.Errorf("hive: DB list: %w", err)
	}
	if len(list) < count*format.DWORDSize {
		return nil, fmt.Errorf("hive: DB list too small: need %d bytes, have %d",
			count*format.DWORDSize, len(list))
	}

	out := make([]byte, 0, n)
	for i := range count {
		seg, err := resolveRelCellPayload(hiveBuf, format.ReadU32(list, i*format.DWORDSize))
		if err != nil {
			return nil, fmt.Errorf("hive: DB segment %d: %w", i, err)
		}
		take := min(n-len(out), format.DBChunkSize, len(seg))
		out = append(out, seg[:take]...)
		if len(out) == n {
			break
		}
	}
	if len(out) < n {
		return nil, fmt.Errorf("hive: DB data truncated: have=%d need=%d", len(out), n)
	}
	return out, nil
}
