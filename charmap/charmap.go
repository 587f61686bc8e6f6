package charmap

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Map is a total byte-to-byte remapping, applied to every input byte before
// frequency counting and encoding.
type Map [256]byte

// Identity returns the map f(c) = c.
func Identity() Map {
	var m Map
	for i := range m {
		m[i] = byte(i)
	}
	return m
}

// Load reads and parses the character map in the named file.
func Load(path string) (Map, error) {
	f, err := os.Open(path)
	if err != nil {
		return Identity(), fmt.Errorf("loading character map: %w", err)
	}
	defer f.Close()

	m, err := Parse(f)
	if err != nil {
		return m, fmt.Errorf("character map %s: %w", path, err)
	}
	return m, nil
}

// Parse reads a character map in the textual mapping format (see the
// package documentation).  Unmentioned bytes map to themselves; later
// entries override earlier ones.  Errors carry the input line number.
func Parse(r io.Reader) (Map, error) {
	m := Identity()

	sc := bufio.NewScanner(r)
	lineno := 0
	for sc.Scan() {
		lineno++
		line := strings.TrimSpace(stripComment(sc.Text()))
		if line == "" {
			continue
		}

		// The separator is the last '=' so that a quoted '=' key parses.
		sep := strings.LastIndexByte(line, '=')
		if sep < 0 {
			return m, fmt.Errorf("line %d: missing '='", lineno)
		}
		lo, hi, err := parseKey(strings.TrimSpace(line[:sep]))
		if err != nil {
			return m, fmt.Errorf("line %d: %w", lineno, err)
		}
		target, err := parseValue(strings.TrimSpace(line[sep+1:]))
		if err != nil {
			return m, fmt.Errorf("line %d: %w", lineno, err)
		}

		span := int(hi) - int(lo)
		if int(target)+span > 0xFF {
			return m, fmt.Errorf("line %d: range of %d targets starting at $%02X runs past $FF", lineno, span+1, target)
		}
		for i := 0; i <= span; i++ {
			m[int(lo)+i] = target + byte(i)
		}
	}
	if err := sc.Err(); err != nil {
		return m, fmt.Errorf("reading character map: %w", err)
	}
	return m, nil
}

// stripComment cuts the line at the first '#' or ';' outside single quotes.
func stripComment(line string) string {
	quoted := false
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\'':
			quoted = !quoted
		case '#', ';':
			if !quoted {
				return line[:i]
			}
		}
	}
	return line
}

// parseKey parses the left-hand side of a mapping: a single character atom,
// or an inclusive range of two atoms joined by '-'.
func parseKey(s string) (lo, hi byte, err error) {
	lo, rest, err := scanAtom(s)
	if err != nil {
		return 0, 0, err
	}
	hi = lo
	if rest == "" {
		return lo, hi, nil
	}
	if rest[0] != '-' {
		return 0, 0, fmt.Errorf("trailing %q after key", rest)
	}
	hi, rest, err = scanAtom(rest[1:])
	if err != nil {
		return 0, 0, err
	}
	if rest != "" {
		return 0, 0, fmt.Errorf("trailing %q after key range", rest)
	}
	if hi < lo {
		return 0, 0, fmt.Errorf("descending range $%02X-$%02X", lo, hi)
	}
	return lo, hi, nil
}

// scanAtom consumes one character atom from the front of s: a literal
// character, a quoted character like 'A', or an escape (\\ \n \t \r \0
// \xHH).
func scanAtom(s string) (byte, string, error) {
	if s == "" {
		return 0, "", errors.New("missing character")
	}
	switch s[0] {
	case '\'':
		if len(s) < 3 || s[2] != '\'' {
			return 0, "", fmt.Errorf("unterminated quote in %q", s)
		}
		return s[1], s[3:], nil
	case '\\':
		if len(s) < 2 {
			return 0, "", fmt.Errorf("dangling escape in %q", s)
		}
		switch s[1] {
		case '\\':
			return '\\', s[2:], nil
		case 'n':
			return '\n', s[2:], nil
		case 't':
			return '\t', s[2:], nil
		case 'r':
			return '\r', s[2:], nil
		case '0':
			return 0, s[2:], nil
		case 'x':
			if len(s) < 4 {
				return 0, "", fmt.Errorf("truncated \\x escape in %q", s)
			}
			v, err := strconv.ParseUint(s[2:4], 16, 8)
			if err != nil {
				return 0, "", fmt.Errorf("bad \\x escape in %q", s)
			}
			return byte(v), s[4:], nil
		default:
			return 0, "", fmt.Errorf("unknown escape \\%c", s[1])
		}
	default:
		return s[0], s[1:], nil
	}
}

// parseValue parses the right-hand side of a mapping: $HH, 0xHH or decimal,
// in the range 0..255.
func parseValue(s string) (byte, error) {
	if s == "" {
		return 0, errors.New("missing value")
	}
	var v uint64
	var err error
	switch {
	case strings.HasPrefix(s, "$"):
		v, err = strconv.ParseUint(s[1:], 16, 8)
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		v, err = strconv.ParseUint(s[2:], 16, 8)
	default:
		v, err = strconv.ParseUint(s, 10, 8)
	}
	if err != nil {
		return 0, fmt.Errorf("bad value %q", s)
	}
	return byte(v), nil
}
