package logger

import (
	"log/slog"
	"time"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Template records a template slug under the key "template".
func Template(slug string) slog.Attr {
	return slog.String("template", slug)
}

// Lang records a language code under the key "lang".
func Lang(lang string) slog.Attr {
	return slog.String("lang", lang)
}

// Location records where a document was written under the key "location".
func Location(loc string) slog.Attr {
	return slog.String("location", loc)
}

// TemplateID records a remote template identifier under the key "template_id".
// An empty id returns an empty Attr.
func TemplateID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("template_id", id)
}

// VersionID records a remote version identifier under the key "version_id".
// An empty id returns an empty Attr.
func VersionID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("version_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}
