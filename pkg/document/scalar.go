package document

import (
	"strconv"
	"strings"
)

// ParseScalar converts user-typed text into a scalar Value. It is total:
// anything that is not empty, quoted, a keyword, or a number is a string.
// Precedence, tested in order:
//
//  1. empty/whitespace-only -> null
//  2. matching surrounding quotes -> string (escapes decoded)
//  3. "true"/"false" (case-insensitive) -> bool
//  4. "null" (case-insensitive) -> null
//  5. base-10 integer -> int
//  6. float -> float
//  7. anything else -> string, trimmed
//
// Quoting wins over keyword detection: `"true"` is the string true.
func ParseScalar(text string) *Value {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return NewNull()
	}
	if len(trimmed) >= 2 {
		first, last := trimmed[0], trimmed[len(trimmed)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return NewString(UnescapeString(trimmed[1 : len(trimmed)-1]))
		}
	}
	switch strings.ToLower(trimmed) {
	case "true":
		return NewBool(true)
	case "false":
		return NewBool(false)
	case "null":
		return NewNull()
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return NewInt(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return NewFloat(f)
	}
	return NewString(trimmed)
}

// Preview renders a scalar for display: strings quoted and escaped, other
// kinds in their natural text form. Containers preview as empty; their
// children carry the information.
func Preview(v *Value) string {
	switch v.Kind() {
	case KindString:
		return `"` + EscapeString(v.Str()) + `"`
	case KindInt:
		return strconv.FormatInt(v.Int(), 10)
	case KindFloat:
		return canonFloat(v.Float())
	case KindBool:
		return strconv.FormatBool(v.Bool())
	case KindNull:
		return "null"
	}
	return ""
}

// EscapeString encodes backslash, double quote, newline, and tab for
// single-line display.
func EscapeString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
		"\t", `\t`,
	)
	return r.Replace(s)
}

// UnescapeString decodes the escapes produced by EscapeString. Unknown
// escape sequences keep the backslash literally.
func UnescapeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' {
			b.WriteByte(s[i])
			continue
		}
		if i+1 >= len(s) {
			b.WriteByte('\\')
			break
		}
		i++
		switch s[i] {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		default:
			b.WriteByte('\\')
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
