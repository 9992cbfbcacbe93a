package roster

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/forPelevin/gomoji"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// BrandToken marks text scraped from site chrome rather than a person card.
const BrandToken = "linkedin"

// asideRe matches an innermost parenthetical or bracketed aside.
var asideRe = regexp.MustCompile(`\([^()]*\)|\[[^\[\]]*\]`)

// suffixTokens are honorifics and credentials dropped from names. Tokens are
// compared lowercased with one trailing period removed. Only the two degrees
// conventionally written with inner periods list a dotted spelling, so
// initials such as "J.R." are kept.
var suffixTokens = map[string]bool{
	"phd":  true,
	"ph.d": true,
	"dr":   true,
	"jr":   true,
	"sr":   true,
	"ii":   true,
	"iii":  true,
	"iv":   true,
	"esq":  true,
	"md":   true,
	"m.d":  true,
	"dds":  true,
	"dvm":  true,
}

// NormalizeName cleans a raw card title into a display name.
// Returns "" when nothing is left.
//
// The stages run in a fixed order: decorative symbols, asides, comma cut,
// suffix tokens, leading periods, whitespace. An aside may hold a comma, so
// asides go before the comma cut; whitespace is collapsed last.
func NormalizeName(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}

	name := stripDecorative(raw)
	name = stripAsides(name)

	if i := strings.IndexByte(name, ','); i >= 0 {
		name = name[:i]
	}

	name = stripSuffixTokens(name)
	name = strings.TrimLeft(strings.TrimSpace(name), ".")

	return strings.Join(strings.Fields(name), " ")
}

// ValidName reports whether a normalized name looks like a real person with a
// surname.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	if strings.Contains(strings.ToLower(name), BrandToken) {
		return false
	}

	parts := strings.Fields(name)
	if len(parts) < 2 {
		return false
	}

	// A surname like "M." is an unresolved initial.
	last := strings.TrimSuffix(parts[len(parts)-1], ".")
	if utf8.RuneCountInString(last) == 1 {
		r, _ := utf8.DecodeRuneInString(last)
		if unicode.IsLetter(r) {
			return false
		}
	}

	return true
}

// stripDecorative drops emoji sequences first, then any joiners, selectors
// and symbols they leave behind.
func stripDecorative(s string) string {
	s = gomoji.RemoveEmojis(s)
	out, _, err := transform.String(runes.Remove(runes.Predicate(isDecorative)), s)
	if err != nil {
		return s
	}
	return out
}

// isDecorative reports whether r is a joiner, selector, tag or symbol that
// never carries name information.
func isDecorative(r rune) bool {
	switch {
	case r < utf8.RuneSelf:
		return false
	case r == '\u200B', r == '\u200C', r == '\u200D', r == '\u2060', r == '\uFEFF':
		return true
	case r == '\u20E3':
		return true
	case r >= 0xFE00 && r <= 0xFE0F, r >= 0xE0100 && r <= 0xE01EF:
		return true
	case r >= 0xE0000 && r <= 0xE007F:
		return true
	}
	return unicode.Is(unicode.So, r)
}

func stripAsides(s string) string {
	for {
		next := asideRe.ReplaceAllString(s, " ")
		if next == s {
			return s
		}
		s = next
	}
}

func stripSuffixTokens(s string) string {
	parts := strings.Fields(s)
	kept := parts[:0]
	for _, p := range parts {
		if suffixTokens[strings.TrimSuffix(strings.ToLower(p), ".")] {
			continue
		}
		kept = append(kept, p)
	}
	return strings.Join(kept, " ")
}
