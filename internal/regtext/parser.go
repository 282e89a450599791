// Package regtext parses regedit .reg exports into key sections and typed
// values.
package regtext

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/gogscan/internal/format"
)

// File is a parsed export.
type File struct {
	Header   string
	Sections []Section
}

// Section is one [key] block, in file order. A key may appear in several
// sections.
type Section struct {
	Path   string
	Delete bool // [-path]
	Values []Value
}

// Value is one assignment line. Quoted strings carry Text with Type REGSz and
// nil Data; every other form carries raw Data.
type Value struct {
	Name   string
	Type   uint32
	Text   string
	Data   []byte
	Delete bool // "name"=-
}

// Parse reads an export. The encoding is detected from the BOM.
func Parse(data []byte) (*File, error) {
	text, err := decodeInput(data)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(bytes.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	f := &File{}
	var current *Section
	var pending string
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())

		if pending != "" {
			pending += line
			if strings.HasSuffix(line, backslash) {
				continue
			}
			line, pending = pending, ""
		} else if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		if f.Header == "" {
			if line != HeaderV5 && line != HeaderV4 {
				return nil, errors.New("regtext: missing header")
			}
			f.Header = line
			continue
		}

		if strings.HasPrefix(line, keyOpen) {
			if !strings.HasSuffix(line, keyClose) {
				return nil, fmt.Errorf("regtext: line %d: malformed section %q", lineNo, line)
			}
			path := strings.TrimSuffix(strings.TrimPrefix(line, keyOpen), keyClose)
			sec := Section{Path: strings.TrimSpace(path)}
			if strings.HasPrefix(path, deletePrefix) {
				sec = Section{Path: strings.TrimSpace(path[1:]), Delete: true}
			}
			f.Sections = append(f.Sections, sec)
			current = &f.Sections[len(f.Sections)-1]
			continue
		}

		// hex payloads wrap with a trailing backslash.
		if strings.HasSuffix(line, backslash) && strings.Contains(line, "="+hexPrefix) {
			pending = strings.TrimSuffix(line, backslash)
			continue
		}

		if current == nil {
			return nil, fmt.Errorf("regtext: line %d: value without section", lineNo)
		}
		if current.Delete {
			continue
		}
		v, err := parseValueLine(line)
		if err != nil {
			return nil, fmt.Errorf("regtext: line %d: %w", lineNo, err)
		}
		current.Values = append(current.Values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("regtext: %w", err)
	}
	if pending != "" {
		return nil, errors.New("regtext: unterminated continuation at end of file")
	}
	if f.Header == "" {
		return nil, errors.New("regtext: missing header")
	}
	return f, nil
}

func parseValueLine(line string) (Value, error) {
	if strings.HasPrefix(line, defaultValuePrefix) {
		return parseValue("", line[len(defaultValuePrefix):])
	}
	if !strings.HasPrefix(line, quote) {
		return Value{}, fmt.Errorf("malformed value line %q", line)
	}
	end := findClosingQuote(line)
	if end < 0 {
		return Value{}, fmt.Errorf("unterminated value name in %q", line)
	}
	name := unescapeRegString(line[1:end])
	rest := strings.TrimLeft(line[end+1:], " \t")
	if !strings.HasPrefix(rest, valueAssignment) {
		return Value{}, fmt.Errorf("missing '=' in %q", line)
	}
	return parseValue(name, rest[1:])
}

func parseValue(name, payload string) (Value, error) {
	payload = strings.TrimSpace(payload)
	switch {
	case payload == deletePrefix:
		return Value{Name: name, Delete: true}, nil

	case strings.HasPrefix(payload, quote):
		if len(payload) < 2 || findClosingQuote(payload) != len(payload)-1 {
			return Value{}, fmt.Errorf("unterminated string %q", payload)
		}
		return Value{Name: name, Type: format.REGSz, Text: unescapeRegString(payload[1 : len(payload)-1])}, nil

	case strings.HasPrefix(payload, dwordPrefix):
		digits := payload[len(dwordPrefix):]
		if len(digits) != dwordHexLength {
			return Value{}, fmt.Errorf("invalid dword %q", payload)
		}
		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil {
			return Value{}, fmt.Errorf("invalid dword %q: %w", payload, err)
		}
		buf := make([]byte, format.DWORDSize)
		binary.LittleEndian.PutUint32(buf, uint32(n))
		return Value{Name: name, Type: format.REGDword, Data: buf}, nil

	case strings.HasPrefix(payload, hexPrefix):
		typ := format.REGBinary
		if num, ok := parseHexValueType(payload); ok {
			n, err := strconv.ParseUint(num, 16, 32)
			if err != nil {
				return Value{}, fmt.Errorf("invalid hex type %q", num)
			}
			typ = uint32(n)
		}
		data, err := parseHexBytes(payload)
		if err != nil {
			return Value{}, err
		}
		return Value{Name: name, Type: typ, Data: data}, nil
	}
	return Value{}, fmt.Errorf("unsupported value %q", payload)
}
