package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnvExpr replaces every ${env.KEY} occurrence with the value of
// the KEY environment variable, or an empty string when unset. Malformed
// expressions degrade gracefully: a missing closing brace keeps the
// remainder literal, an invalid key keeps the prefix literal while the
// rest of the text is still scanned.
func expandEnvExpr(text string) string {
	if !strings.Contains(text, envPrefix) {
		return text
	}
	b := strings.Builder{}
	for {
		idx := strings.Index(text, envPrefix)
		if idx < 0 {
			b.WriteString(text)
			break
		}
		b.WriteString(text[:idx])
		rest := text[idx+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(text[idx:])
			break
		}
		key := rest[:end]
		if !isEnvKey(key) {
			b.WriteString(envPrefix)
			text = rest
			continue
		}
		b.WriteString(os.Getenv(key))
		text = rest[end+1:]
	}
	return b.String()
}

func isEnvKey(candidate string) bool {
	for _, r := range candidate {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			return false
		}
	}
	return true
}
