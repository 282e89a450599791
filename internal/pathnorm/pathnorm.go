// Package pathnorm cleans installation paths read from the registry. The
// rules are Windows path semantics applied as string operations, so results
// do not depend on the host running the scan.
package pathnorm

import "strings"

// Normalizer turns a raw path string into its canonical form. It never
// fails.
type Normalizer interface {
	Normalize(raw string) string
}

// Windows normalises drive-letter and UNC paths.
type Windows struct{}

// Normalize implements Normalizer.
func (Windows) Normalize(raw string) string {
	p := strings.TrimSpace(raw)
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		p = strings.TrimSpace(p[1 : len(p)-1])
	}
	if p == "" {
		return ""
	}
	p = strings.ReplaceAll(p, "/", `\`)

	prefix, rest := splitPrefix(p)
	rooted := strings.HasPrefix(rest, `\`)

	var segs []string
	for _, seg := range strings.Split(rest, `\`) {
		switch seg {
		case "", ".":
		case "..":
			if len(segs) > 0 && segs[len(segs)-1] != ".." {
				segs = segs[:len(segs)-1]
			} else if !rooted {
				segs = append(segs, seg)
			}
		default:
			segs = append(segs, seg)
		}
	}

	body := strings.Join(segs, `\`)
	switch {
	case strings.HasPrefix(prefix, `\\`):
		if body == "" {
			return prefix
		}
		return prefix + `\` + body
	case rooted:
		return prefix + `\` + body
	case prefix == "" && body == "":
		return "."
	default:
		return prefix + body
	}
}

// splitPrefix separates a drive ("C:") or UNC share (`\\server\share`) from
// the rest of the path. Drive letters are upper-cased.
func splitPrefix(p string) (prefix, rest string) {
	if len(p) >= 2 && p[1] == ':' && isLetter(p[0]) {
		return strings.ToUpper(p[:1]) + ":", p[2:]
	}
	if strings.HasPrefix(p, `\\`) {
		parts := strings.FieldsFunc(p[2:], func(r rune) bool { return r == '\\' })
		switch len(parts) {
		case 0:
			return `\\`, ""
		case 1:
			return `\\` + parts[0], ""
		default:
			return `\\` + parts[0] + `\` + parts[1], `\` + strings.Join(parts[2:], `\`)
		}
	}
	return "", p
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
