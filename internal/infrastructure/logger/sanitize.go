package logger

import (
	"fmt"
	"strings"
)

// SanitizeForLog escapes control characters so a crafted file name cannot
// forge log lines or drive the terminal. Printable Unicode is kept as is.
func SanitizeForLog(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	for _, r := range s {
		switch r {
		case '\n':
			result.WriteString("\\n")
		case '\r':
			result.WriteString("\\r")
		case '\t':
			result.WriteString("\\t")
		default:
			if r < 32 || r == 127 {
				result.WriteString(fmt.Sprintf("\\x%02x", r))
			} else {
				result.WriteRune(r)
			}
		}
	}
	return result.String()
}

// SanitizePaths joins paths for a single log line.
func SanitizePaths(paths []string) string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = SanitizeForLog(p)
	}
	return "[" + strings.Join(out, ", ") + "]"
}
