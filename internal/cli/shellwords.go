package cli

import (
	"errors"
	"unicode"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// splitScriptLine splits one script line into words, handling basic quoting. It supports
// single quotes, double quotes, and backslash escaping (outside single quotes). A `#`
// that starts a word outside quotes ends the line. A quoted empty string is kept as an
// empty word.
func splitScriptLine(s string) ([]string, error) {
	var out []string
	var cur []rune
	inSingle := false
	inDouble := false
	escaped := false
	quoted := false

	flush := func() {
		if len(cur) == 0 && !quoted {
			return
		}
		out = append(out, string(cur))
		cur = cur[:0]
		quoted = false
	}

	for _, r := range []rune(s) {
		if escaped {
			cur = append(cur, r)
			escaped = false
			continue
		}

		if r == '\\' && !inSingle {
			escaped = true
			continue
		}

		if r == '\'' && !inDouble {
			inSingle = !inSingle
			quoted = true
			continue
		}

		if r == '"' && !inSingle {
			inDouble = !inDouble
			quoted = true
			continue
		}

		if !inSingle && !inDouble {
			if unicode.IsSpace(r) {
				flush()
				continue
			}
			if r == '#' && len(cur) == 0 && !quoted {
				break
			}
		}

		cur = append(cur, r)
	}

	if inSingle || inDouble {
		return nil, errUnterminatedQuote
	}
	flush()
	return out, nil
}
