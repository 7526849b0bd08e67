package printer

import (
	"fmt"
	"strings"
)

// quote renders s as a GraphQL string literal.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u%04x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// blockStringSafe reports whether s reads back unchanged from a block string
// indented with indent. The block string value drops leading and trailing
// blank lines and the indentation common to all lines, so s must start and
// end with text and have a line without leading whitespace.
func blockStringSafe(s, indent string) bool {
	if strings.Trim(indent, " \t") != "" {
		return false
	}
	for _, r := range s {
		if (r < 0x20 && r != '\n' && r != '\t') || r == '\r' {
			return false
		}
	}
	lines := strings.Split(s, "\n")
	if isBlank(lines[0]) || isBlank(lines[len(lines)-1]) {
		return false
	}
	for _, line := range lines {
		if line != "" && line[0] != ' ' && line[0] != '\t' {
			return true
		}
	}
	return false
}

func isBlank(s string) bool {
	return strings.Trim(s, " \t") == ""
}
