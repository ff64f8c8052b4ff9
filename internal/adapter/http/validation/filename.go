package validation

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// maxFilenameLength is the maximum allowed filename length (common filesystem limit).
const maxFilenameLength = 255

// SanitizeFilename makes name safe for a quoted Content-Disposition
// parameter. Quotes, separators and control characters become underscores,
// Unicode is kept and the extension survives truncation.
func SanitizeFilename(name string) string {
	var sb strings.Builder
	sb.Grow(len(name))
	for _, r := range name {
		if shouldReplace(r) {
			sb.WriteRune('_')
		} else {
			sb.WriteRune(r)
		}
	}

	result := strings.TrimSpace(sb.String())
	if strings.Trim(result, "_.") == "" {
		return "merged"
	}
	if len(result) > maxFilenameLength {
		result = truncatePreservingExtension(result)
	}
	return result
}

func shouldReplace(r rune) bool {
	if r < 32 || r == 127 || r == utf8.RuneError {
		return true
	}
	switch r {
	case '"', '\\', '/', ':', ';':
		return true
	}
	return false
}

func truncatePreservingExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" || len(ext) >= maxFilenameLength {
		return truncateToBytes(name, maxFilenameLength)
	}
	base := strings.TrimSuffix(name, ext)
	return truncateToBytes(base, maxFilenameLength-len(ext)) + ext
}

// truncateToBytes cuts s to at most maxBytes without splitting a rune.
func truncateToBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}

// ContentDisposition returns an attachment header for the merged output at
// path. Non-ASCII names also get an RFC 5987 filename* parameter with an
// ASCII fallback.
func ContentDisposition(path string) string {
	name := SanitizeFilename(filepath.Base(path))

	ascii := asciiFallback(name)
	if ascii == name {
		return fmt.Sprintf("attachment; filename=%q", name)
	}
	return fmt.Sprintf("attachment; filename=%q; filename*=UTF-8''%s", ascii, url.PathEscape(name))
}

func asciiFallback(name string) string {
	var sb strings.Builder
	for _, r := range name {
		if r > 126 {
			sb.WriteRune('_')
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}
