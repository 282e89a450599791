package hive

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"github.com/joshuapare/gogscan/internal/format"
)

var utf16le = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)

// decodeName converts an NK/VK name to UTF-8. Compressed names use
// Windows-1252; everything else is UTF-16LE.
func decodeName(raw []byte, compressed bool) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	if compressed {
		if isASCII(raw) {
			return string(raw), nil
		}
		decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
		if err != nil {
			return "", fmt.Errorf("hive: decode Windows-1252 name: %w", err)
		}
		return string(decoded), nil
	}
	if len(raw)%2 != 0 {
		return "", errors.New("hive: UTF-16 name has odd length")
	}
	decoded, err := utf16le.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("hive: decode UTF-16 name: %w", err)
	}
	return string(decoded), nil
}

// DecodeUTF16String decodes REG_SZ style data, stopping at the first NUL.
// A trailing odd byte is ignored; some writers pad string data that way.
func DecodeUTF16String(data []byte) (string, error) {
	if len(data)%2 != 0 {
		data = data[:len(data)-1]
	}
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			data = data[:i]
			break
		}
	}
	if len(data) == 0 {
		return "", nil
	}
	decoded, err := utf16le.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("hive: decode UTF-16 string: %w", err)
	}
	return string(decoded), nil
}

// StringData renders value data as a string. REG_SZ and REG_EXPAND_SZ are
// decoded; REG_DWORD, REG_DWORD_BE and REG_QWORD are formatted in decimal so
// callers reading numeric fields can treat them uniformly. Other types return
// ErrTypeMismatch.
func StringData(typ uint32, data []byte) (string, error) {
	switch typ {
	case format.REGSz, format.REGExpandSz:
		return DecodeUTF16String(data)
	case format.REGDword:
		if len(data) < format.DWORDSize {
			return "", fmt.Errorf("hive: REG_DWORD data too short: %d", len(data))
		}
		return strconv.FormatUint(uint64(format.ReadU32(data, 0)), 10), nil
	case format.REGDwordBE:
		if len(data) < format.DWORDSize {
			return "", fmt.Errorf("hive: REG_DWORD_BE data too short: %d", len(data))
		}
		be := uint32(data[0])<<24 | uint32(data[1])<<16 | uint32(data[2])<<8 | uint32(data[3])
		return strconv.FormatUint(uint64(be), 10), nil
	case format.REGQword:
		if len(data) < format.QWORDSize {
			return "", fmt.Errorf("hive: REG_QWORD data too short: %d", len(data))
		}
		return strconv.FormatUint(format.ReadU64(data, 0), 10), nil
	default:
		return "", fmt.Errorf("%w: type %d", ErrTypeMismatch, typ)
	}
}

func isASCII(data []byte) bool {
	return bytes.IndexFunc(data, func(r rune) bool { return r >= 0x80 }) < 0
}
