package strcase

import (
	"strings"
	"unicode"
)

// ToLowerCamel converts a Go identifier to lowerCamelCase (initialism-safe).
//
// "FullAddress" becomes "fullAddress", "URL" becomes "url" and "HTTPServer"
// becomes "httpServer".
func ToLowerCamel(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)

	var b strings.Builder
	b.Grow(len(s))

	for i, r := range runes {
		if !unicode.IsUpper(r) {
			b.WriteString(string(runes[i:]))
			break
		}

		// keep the last upper rune of an acronym when a lower word follows it
		if i > 0 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
			b.WriteString(string(runes[i:]))
			break
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}
