package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Option configures slug generation.
type Option func(*config)

type config struct {
	maxLength int
	separator string
	lowercase bool
	splitCase bool
}

func defaultConfig() *config {
	return &config{
		separator: "-",
		lowercase: true,
	}
}

// MaxLength limits the slug to n runes. Zero means no limit.
func MaxLength(n int) Option {
	return func(c *config) {
		c.maxLength = n
	}
}

// Separator sets the word separator. Default is "-".
func Separator(s string) Option {
	return func(c *config) {
		c.separator = s
	}
}

// Lowercase controls lowercase conversion. Default is true.
func Lowercase(enabled bool) Option {
	return func(c *config) {
		c.lowercase = enabled
	}
}

// SplitCase starts a new word at every capital letter that follows a
// lowercase letter or a digit, so "AccountSecurityAlert" becomes
// "account-security-alert".
func SplitCase(enabled bool) Option {
	return func(c *config) {
		c.splitCase = enabled
	}
}

// Make converts s into a file and URL safe identifier.
// Letters and digits are kept (diacritics folded to ASCII), every other run
// of characters collapses into a single separator.
func Make(s string, opts ...Option) string {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s = fold(s)
	sepLen := len([]rune(cfg.separator))

	var b strings.Builder
	b.Grow(len(s))

	lastWasSep := true // no leading separator
	runeCount := 0
	var prev rune

	writeSep := func() bool {
		if lastWasSep {
			return true
		}
		if cfg.maxLength > 0 && runeCount+sepLen > cfg.maxLength {
			return false
		}
		b.WriteString(cfg.separator)
		lastWasSep = true
		runeCount += sepLen
		return true
	}

	for _, r := range s {
		if cfg.maxLength > 0 && runeCount >= cfg.maxLength {
			break
		}

		if !isASCIIAlnum(r) {
			if !writeSep() {
				break
			}
			prev = r
			continue
		}

		if cfg.splitCase && isUpper(r) && (isLower(prev) || isDigit(prev)) {
			if !writeSep() {
				break
			}
		}

		prev = r
		if cfg.lowercase {
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
		lastWasSep = false
		runeCount++
	}

	return strings.TrimSuffix(b.String(), cfg.separator)
}

// Title turns an identifier like "AccountSecurityAlert" into "Account Security Alert".
func Title(s string) string {
	return Make(s, Separator(" "), Lowercase(false), SplitCase(true))
}

// fold strips combining marks ("é" to "e") and maps the few Latin letters
// that have no decomposition.
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), runes.Map(mapSpecial), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func mapSpecial(r rune) rune {
	switch r {
	case 'ł':
		return 'l'
	case 'Ł':
		return 'L'
	case 'đ':
		return 'd'
	case 'Đ':
		return 'D'
	case 'ø':
		return 'o'
	case 'Ø':
		return 'O'
	case 'ß':
		return 's'
	case 'æ':
		return 'a'
	case 'Æ':
		return 'A'
	}
	return r
}

func isASCIIAlnum(r rune) bool { return isLower(r) || isUpper(r) || isDigit(r) }
func isLower(r rune) bool      { return r >= 'a' && r <= 'z' }
func isUpper(r rune) bool      { return r >= 'A' && r <= 'Z' }
func isDigit(r rune) bool      { return r >= '0' && r <= '9' }
