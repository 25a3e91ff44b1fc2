package i18n

import "errors"

var (
	// ErrLocaleLoad wraps every failure to read or decode a locale file.
	// The message carries the offending path.
	ErrLocaleLoad = errors.New("failed to load locale")

	ErrInvalidLanguage   = errors.New("invalid language code")
	ErrParsingCancelled  = errors.New("locale parsing cancelled")
	ErrFailedToParseJSON = errors.New("failed to parse JSON content")
	ErrFailedToParseYAML = errors.New("failed to parse YAML content")
)
