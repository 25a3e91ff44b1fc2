package i18n_test

import (
	"testing"

	"github.com/dmitrymomot/emailkit/pkg/i18n"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLang(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
		wantErr  bool
	}{
		{input: "en", expected: "en"},
		{input: " PL ", expected: "pl"},
		{input: "pt-br", expected: "pt-BR"},
		{input: "", wantErr: true},
		{input: "../etc", wantErr: true},
		{input: "not a language", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			got, err := i18n.NormalizeLang(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, i18n.ErrInvalidLanguage)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseLangs(t *testing.T) {
	t.Parallel()

	t.Run("keeps order and drops duplicates", func(t *testing.T) {
		t.Parallel()

		langs, err := i18n.ParseLangs("pl, en,PL,,de")
		require.NoError(t, err)
		assert.Equal(t, []string{"pl", "en", "de"}, langs)
	})

	t.Run("empty list defaults to english", func(t *testing.T) {
		t.Parallel()

		langs, err := i18n.ParseLangs(" ")
		require.NoError(t, err)
		assert.Equal(t, []string{i18n.DefaultLanguage}, langs)
	})

	t.Run("invalid code", func(t *testing.T) {
		t.Parallel()

		_, err := i18n.ParseLangs("en,???")
		assert.ErrorIs(t, err, i18n.ErrInvalidLanguage)
	})
}
