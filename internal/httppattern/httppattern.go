// Package httppattern parses routing patterns in the syntax of the standard
// library's http.ServeMux and builds URLs back out of them.
package httppattern

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Pattern is a parsed routing pattern: an optional method, an optional host
// and a path with literal and wildcard segments.
type Pattern struct {
	method string
	host   string
	segs   []segment

	// exactEnd is set for patterns ending in {$}: the path matches exactly,
	// including the trailing slash.
	exactEnd bool

	// subtree is set for patterns ending in a bare slash, matching the whole
	// subtree below the path.
	subtree bool
}

// segment is one path element between slashes.
type segment struct {
	// s holds the literal text, or the wildcard name when wild is set.
	s     string
	wild  bool
	multi bool
}

// ParsePattern parses a pattern of the form "[METHOD ][HOST]/[PATH]".
func ParsePattern(str string) (*Pattern, error) {
	if str == "" {
		return nil, errors.New("empty pattern")
	}

	pat := &Pattern{}

	rest := str
	if idx := strings.IndexAny(rest, " \t"); idx >= 0 {
		pat.method = rest[:idx]
		rest = strings.TrimLeft(rest[idx+1:], " \t")

		if pat.method == "" {
			return nil, errors.New("empty method")
		}
	}

	slash := strings.IndexByte(rest, '/')
	if slash < 0 {
		return nil, errors.New("host/path missing /")
	}

	pat.host = rest[:slash]
	path := rest[slash+1:]

	if strings.ContainsAny(pat.host, "{}") {
		return nil, errors.New("host contains '{' or '}'")
	}

	parts := strings.Split(path, "/")
	for i, part := range parts {
		last := i == len(parts)-1

		switch {
		case part == "" && last:
			if len(parts) > 1 {
				pat.subtree = true
			}

		case part == "{$}":
			if !last {
				return nil, errors.New("{$} not at end")
			}

			pat.exactEnd = true

		case strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}"):
			name := part[1 : len(part)-1]

			multi := strings.HasSuffix(name, "...")
			if multi {
				name = strings.TrimSuffix(name, "...")

				if !last {
					return nil, fmt.Errorf("%q must be the last segment", part)
				}
			}

			if !isValidWildcardName(name) {
				return nil, fmt.Errorf("bad wildcard name %q", name)
			}

			for _, seg := range pat.segs {
				if seg.wild && seg.s == name {
					return nil, fmt.Errorf("duplicate wildcard name %q", name)
				}
			}

			pat.segs = append(pat.segs, segment{s: name, wild: true, multi: multi})

		case strings.ContainsAny(part, "{}"):
			return nil, fmt.Errorf("bad segment %q: '{' and '}' only allowed around wildcards", part)

		default:
			pat.segs = append(pat.segs, segment{s: part})
		}
	}

	return pat, nil
}

// Build substitutes vals for the pattern's wildcards in order and returns the
// resulting url path.
func Build(pat *Pattern, vals ...string) (string, error) {
	parts := make([]string, 0, len(pat.segs))

	next := 0
	for _, seg := range pat.segs {
		if !seg.wild {
			parts = append(parts, seg.s)
			continue
		}

		if next >= len(vals) {
			return "", fmt.Errorf("not enough values: no value for wildcard %q", seg.s)
		}

		parts = append(parts, vals[next])
		next++
	}

	if next < len(vals) {
		return "", fmt.Errorf("too many values: %d left over", len(vals)-next)
	}

	res := "/" + strings.Join(parts, "/")
	if (pat.exactEnd || pat.subtree) && res != "/" {
		res += "/"
	}

	return res, nil
}

func isValidWildcardName(name string) bool {
	if name == "" {
		return false
	}

	for i, r := range name {
		if unicode.IsLetter(r) || r == '_' {
			continue
		}

		if i > 0 && unicode.IsDigit(r) {
			continue
		}

		return false
	}

	return true
}
