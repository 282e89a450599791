package regtext

import (
	"errors"
	"fmt"
	"strings"
)

// unescapeRegString undoes the \\ and \" escapes of a quoted .reg string.
func unescapeRegString(s string) string {
	if strings.IndexByte(s, '\\') == -1 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) && (s[i+1] == '\\' || s[i+1] == '"') {
			i++
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// findClosingQuote returns the index of the quote closing the one at
// position 0, skipping quotes preceded by an odd number of backslashes.
// It returns -1 when the string is unterminated.
func findClosingQuote(line string) int {
	for i := 1; i < len(line); i++ {
		if line[i] != '"' {
			continue
		}
		n := 0
		for j := i - 1; j >= 0 && line[j] == '\\'; j-- {
			n++
		}
		if n%2 == 0 {
			return i
		}
	}
	return -1
}

// parseHexValueType extracts N from a hex(N): prefix. N is hexadecimal in
// regedit output.
func parseHexValueType(payload string) (string, bool) {
	open := strings.IndexByte(payload, '(')
	closing := strings.IndexByte(payload, ')')
	if open >= 0 && closing > open {
		return payload[open+1 : closing], true
	}
	return "", false
}

// parseHexBytes decodes the comma separated byte list after the first
// colon. Whitespace and continuation backslashes are ignored and single
// digit bytes are accepted.
func parseHexBytes(payload string) ([]byte, error) {
	colon := strings.IndexByte(payload, ':')
	if colon == -1 {
		return nil, errors.New("invalid hex data: missing colon")
	}
	s := payload[colon+1:]
	out := make([]byte, 0, len(s)/3+1)
	for _, part := range strings.Split(s, ",") {
		part = strings.Trim(part, " \t\r\n\\")
		if part == "" {
			continue
		}
		if len(part) > 2 {
			return nil, fmt.Errorf("invalid hex byte %q", part)
		}
		var v byte
		for i := 0; i < len(part); i++ {
			n := hexCharToNibble(part[i])
			if n == 0xFF {
				return nil, fmt.Errorf("invalid hex byte %q", part)
			}
			v = v<<4 | n
		}
		out = append(out, v)
	}
	return out, nil
}

func hexCharToNibble(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0xFF
	}
}
