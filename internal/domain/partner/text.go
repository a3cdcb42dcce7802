package partner

import (
	"strings"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Arabic keyboards emit Yeh and Kaf code points that render like their Persian
// counterparts but never compare equal to them.
var persianLetters = map[rune]rune{
	'ي': 'ی',
	'ى': 'ی',
	'ك': 'ک',
}

func newTextTransformer() transform.Transformer {
	return transform.Chain(
		norm.NFC,
		runes.Map(func(r rune) rune {
			if p, ok := persianLetters[r]; ok {
				return p
			}
			return r
		}),
	)
}

// NormalizeText trims surrounding whitespace, composes Unicode and unifies
// Arabic Yeh/Kaf into Persian letters so equality filters and search match
// regardless of the keyboard layout the text was typed on.
func NormalizeText(s string) string {
	out, _, err := transform.String(newTextTransformer(), s)
	if err != nil {
		out = s
	}
	return strings.TrimSpace(out)
}

func normalizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := NormalizeText(*s)
	if v == "" {
		return nil
	}
	return &v
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = NormalizeText(tag)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
