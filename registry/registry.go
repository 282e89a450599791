// Package registry abstracts read-only access to a hierarchical registry
// store. The scanner in package gog only ever talks to the Store and Key
// interfaces; the backends in this package provide them over an offline hive
// file, a .reg export, the live Windows registry, or an in-memory tree.
package registry

import "strings"

// Store opens keys by absolute path. Paths are backslash separated and
// relative to HKEY_LOCAL_MACHINE, e.g. `SOFTWARE\WOW6432Node\GOG.com\Games`.
type Store interface {
	OpenKey(path string) (Key, error)
	Close() error
}

// Key is one open registry key. Name lookups are case-insensitive.
type Key interface {
	// SubKeyNames lists the immediate children in store order.
	SubKeyNames() ([]string, error)
	// OpenSubKey opens a direct child.
	OpenSubKey(name string) (Key, error)
	// StringValue reads a named value as text. Numeric values are rendered
	// in decimal; other types fail with ErrTypeMismatch.
	StringValue(name string) (string, error)
	// Path describes the key for diagnostics.
	Path() string
	Close() error
}

// Join concatenates path segments with backslashes, skipping empty ones.
func Join(parts ...string) string {
	var segs []string
	for _, p := range parts {
		p = strings.Trim(p, `\`)
		if p != "" {
			segs = append(segs, p)
		}
	}
	return strings.Join(segs, `\`)
}

// Split breaks a path into its non-empty segments. Forward slashes are
// accepted as separators too.
func Split(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool { return r == '\\' || r == '/' })
}

// hklmPrefixes are the spellings of the machine hive accepted at the start of
// a path; they are stripped so every backend sees HKLM-relative paths.
var hklmPrefixes = []string{"HKEY_LOCAL_MACHINE", "HKLM"}

// TrimHive removes a leading HKEY_LOCAL_MACHINE\ or HKLM\ from path.
func TrimHive(path string) string {
	segs := Split(path)
	if len(segs) > 0 {
		for _, p := range hklmPrefixes {
			if strings.EqualFold(segs[0], p) {
				segs = segs[1:]
				break
			}
		}
	}
	return strings.Join(segs, `\`)
}
