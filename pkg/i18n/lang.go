package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLanguage is used when no language list is given.
const DefaultLanguage = "en"

// NormalizeLang validates a BCP 47 code and returns its canonical form
// ("en", "pt-BR"). Locale files are looked up by the canonical code.
func NormalizeLang(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", fmt.Errorf("%w: empty code", ErrInvalidLanguage)
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrInvalidLanguage, code, err)
	}
	return tag.String(), nil
}

// ParseLangs splits a comma separated list ("en,pl") into canonical codes,
// preserving order and dropping duplicates. An empty list yields DefaultLanguage.
func ParseLangs(list string) ([]string, error) {
	var out []string
	seen := make(map[string]struct{})
	for part := range strings.SplitSeq(list, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lang, err := NormalizeLang(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	if len(out) == 0 {
		return []string{DefaultLanguage}, nil
	}
	return out, nil
}
