package regtext

const (
	// HeaderV5 is the header of a regedit 5.00 export.
	HeaderV5 = "Windows Registry Editor Version 5.00"
	// HeaderV4 is the header of an ANSI regedit 4 export.
	HeaderV4 = "REGEDIT4"

	keyOpen            = "["
	keyClose           = "]"
	deletePrefix       = "-"
	valueAssignment    = "="
	defaultValuePrefix = "@="
	commentPrefix      = ";"
	quote              = `"`
	backslash          = `\`
	escapedQuote       = `\"`
	escapedBackslash   = `\\`

	dwordPrefix    = "dword:"
	hexPrefix      = "hex"
	dwordHexLength = 8
)

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
)
