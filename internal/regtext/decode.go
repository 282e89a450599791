package regtext

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// decodeInput converts an export to UTF-8. regedit 5 writes UTF-16LE with a
// BOM; hand-edited files are often UTF-8, and REGEDIT4 files are ANSI, which
// is read as Windows-1252 when the bytes are not valid UTF-8.
func decodeInput(data []byte) ([]byte, error) {
	switch {
	case bytes.HasPrefix(data, utf16LEBOM):
		dec := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		out, err := dec.Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("regtext: decode UTF-16LE: %w", err)
		}
		return out, nil
	case bytes.HasPrefix(data, utf8BOM):
		return data[len(utf8BOM):], nil
	case utf8.Valid(data):
		return data, nil
	default:
		out, err := charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("regtext: decode Windows-1252: %w", err)
		}
		return out, nil
	}
}
