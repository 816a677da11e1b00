package report

import "strings"

// maxNameLen bounds plot file name prefixes.
const maxNameLen = 64

// plotName makes a file name prefix from a free-form label such as a
// sensor name or a recording path. Anything outside [A-Za-z0-9._-]
// collapses into a single underscore.
func plotName(s string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range s {
		if b.Len() >= maxNameLen {
			break
		}
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9'),
			r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
			lastUnderscore = r == '_'
		case !lastUnderscore:
			b.WriteRune('_')
			lastUnderscore = true
		}
	}
	out := strings.Trim(b.String(), "._")
	if out == "" {
		return "signal"
	}
	return out
}
