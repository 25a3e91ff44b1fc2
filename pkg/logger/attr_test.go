package logger_test

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/emailkit/pkg/logger"
)

func TestError(t *testing.T) {
	err := errors.New("boom")
	attr := logger.Error(err)
	require.Equal(t, "error", attr.Key)
	assert.Equal(t, err, attr.Value.Any())

	assert.True(t, logger.Error(nil).Equal(slog.Attr{}))
}

func TestDomainAttrs(t *testing.T) {
	tests := []struct {
		attr  slog.Attr
		key   string
		value any
	}{
		{attr: logger.Template("welcome"), key: "template", value: "welcome"},
		{attr: logger.Lang("pl"), key: "lang", value: "pl"},
		{attr: logger.Location("dist/welcome-pl.html"), key: "location", value: "dist/welcome-pl.html"},
		{attr: logger.TemplateID("d-123"), key: "template_id", value: "d-123"},
		{attr: logger.VersionID("v-1"), key: "version_id", value: "v-1"},
		{attr: logger.Duration(time.Second), key: "duration", value: time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.key, tt.attr.Key)
			assert.Equal(t, tt.value, tt.attr.Value.Any())
		})
	}
}

func TestEmptyIDs(t *testing.T) {
	assert.True(t, logger.TemplateID("").Equal(slog.Attr{}))
	assert.True(t, logger.VersionID("").Equal(slog.Attr{}))
}
