// internal/bot/text.go
package bot

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// fixEncoding repairs text some clients send as Windows-1251.
func fixEncoding(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	decoder := charmap.Windows1251.NewDecoder()
	fixed, err := decoder.String(s)
	if err == nil && utf8.ValidString(fixed) {
		return fixed
	}

	// last resort: drop the broken bytes
	return strings.ToValidUTF8(s, "")
}

// sanitizeInput turns every kind of whitespace into a single space.
func sanitizeInput(s string) string {
	return strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " ")
}

// splitCommand separates "/cmd@botname args" into "cmd" and the raw args.
func splitCommand(text string) (cmd, args string) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return "", text
	}
	cmd = text
	if end := strings.IndexFunc(text, unicode.IsSpace); end >= 0 {
		cmd, args = text[:end], strings.TrimSpace(text[end:])
	}
	cmd = strings.TrimPrefix(cmd, "/")
	cmd, _, _ = strings.Cut(cmd, "@")
	return strings.ToLower(cmd), args
}
