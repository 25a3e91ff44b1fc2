package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEnv(t *testing.T) (map[string]string, string) {
	t.Helper()
	out := t.TempDir()
	return map[string]string{
		"EMAILKIT_ENV":           "production",
		"EMAILKIT_LOG_LEVEL":     "error",
		"EMAILKIT_LOCALES_DIR":   "../../locales",
		"EMAILKIT_TEMPLATES_DIR": "../../templates",
		"EMAILKIT_MODELS_DIR":    "../../models",
		"EMAILKIT_OUTPUT_DIR":    out,
	}, out
}

func runCLI(t *testing.T, env map[string]string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, env, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	env, _ := testEnv(t)

	tests := []struct {
		name string
		args []string
		code int
	}{
		{"no command", nil, exitUsage},
		{"help", []string{"help"}, exitOK},
		{"unknown command", []string{"publish"}, exitUsage},
		{"unknown flag", []string{"generate", "--nope"}, exitUsage},
		{"invalid language", []string{"generate", "--langs", "not a language"}, exitUsage},
		{"too many names", []string{"generate", "welcome", "extra"}, exitUsage},
		{"update without name", []string{"update", "--sgVersionId", "v-1"}, exitUsage},
		{"update without version", []string{"update", "welcome"}, exitUsage},
		{"deploy without target", []string{"deploy", "welcome"}, exitUsage},
		{"dev with name", []string{"dev", "welcome"}, exitUsage},
		{"dev with bad port", []string{"dev", "--port", "0"}, exitUsage},
		{"list with argument", []string{"list", "welcome"}, exitUsage},
		{"flag help", []string{"generate", "-h"}, exitOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			code, _, _ := runCLI(t, env, tt.args...)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRun_InvalidLogLevel(t *testing.T) {
	t.Parallel()

	env, _ := testEnv(t)
	env["EMAILKIT_LOG_LEVEL"] = "loud"

	code, _, stderr := runCLI(t, env, "list")
	assert.Equal(t, exitFailure, code)
	assert.Contains(t, stderr, "loud")
}

func TestRun_List(t *testing.T) {
	t.Parallel()

	env, _ := testEnv(t)
	code, stdout, _ := runCLI(t, env, "list")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "welcome")
	assert.Contains(t, stdout, "account-security-alert  Account Security Alert")
}

func TestRun_Generate(t *testing.T) {
	t.Parallel()

	t.Run("all templates in every language", func(t *testing.T) {
		t.Parallel()

		env, out := testEnv(t)
		code, stdout, _ := runCLI(t, env, "generate", "--langs", "en,pl")
		require.Equal(t, exitOK, code, stdout)
		assert.Contains(t, stdout, "4 succeeded, 0 failed")

		for _, name := range []string{"welcome-en.html", "welcome-pl.html", "account-security-alert-en.html", "account-security-alert-pl.html"} {
			data, err := os.ReadFile(filepath.Join(out, name))
			require.NoError(t, err, name)
			assert.NotContains(t, string(data), "<style")
		}
	})

	t.Run("single template by component name", func(t *testing.T) {
		t.Parallel()

		env, out := testEnv(t)
		code, _, _ := runCLI(t, env, "generate", "AccountSecurityAlert")
		require.Equal(t, exitOK, code)

		_, err := os.Stat(filepath.Join(out, "account-security-alert-en.html"))
		assert.NoError(t, err)
		_, err = os.Stat(filepath.Join(out, "welcome-en.html"))
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()

		env, _ := testEnv(t)
		code, _, _ := runCLI(t, env, "generate", "nope")
		assert.Equal(t, exitFailure, code)
	})

	t.Run("corrupt locale fails every pair", func(t *testing.T) {
		t.Parallel()

		env, _ := testEnv(t)
		locales := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(locales, "en.json"), []byte("{broken"), 0644))
		env["EMAILKIT_LOCALES_DIR"] = locales

		code, stdout, _ := runCLI(t, env, "generate")
		assert.Equal(t, exitFailure, code)
		assert.Contains(t, stdout, "0 succeeded, 2 failed")
	})
}

func sendGridStub(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = io.Copy(io.Discard, r.Body)
		w.WriteHeader(http.StatusCreated)
		switch r.URL.Path {
		case "/v3/templates":
			_, _ = w.Write([]byte(`{"id":"d-new"}`))
		default:
			_, _ = w.Write([]byte(`{"id":"v-new"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestRun_Deploy(t *testing.T) {
	t.Parallel()

	t.Run("creates template and version", func(t *testing.T) {
		t.Parallel()

		srv, calls := sendGridStub(t)
		env, _ := testEnv(t)
		env["SENDGRID_API_KEY"] = "SG.test"
		env["SENDGRID_API_HOST"] = srv.URL

		code, stdout, _ := runCLI(t, env, "deploy", "welcome", "--create", "--langs", "en,pl")
		require.Equal(t, exitOK, code, stdout)
		assert.Contains(t, stdout, "template d-new version v-new")
		assert.Contains(t, stdout, "1 succeeded, 0 failed, 1 skipped")
		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("missing api key", func(t *testing.T) {
		t.Parallel()

		srv, calls := sendGridStub(t)
		env, _ := testEnv(t)
		env["SENDGRID_API_HOST"] = srv.URL

		code, _, _ := runCLI(t, env, "deploy", "--sgTemplateId", "d-1")
		assert.Equal(t, exitFailure, code)
		assert.Zero(t, calls.Load())
	})
}

func TestRun_Update(t *testing.T) {
	t.Parallel()

	srv, calls := sendGridStub(t)
	env, _ := testEnv(t)
	env["SENDGRID_API_KEY"] = "SG.test"
	env["SENDGRID_API_HOST"] = srv.URL

	code, stdout, _ := runCLI(t, env, "update", "welcome", "--sgVersionId", "v-7")
	require.Equal(t, exitOK, code)
	assert.Contains(t, stdout, "updated version v-7 (welcome/en)")
	assert.Equal(t, int32(1), calls.Load())
}

func TestSplitName(t *testing.T) {
	t.Parallel()

	name, rest := splitName([]string{"welcome", "--langs", "en"})
	assert.Equal(t, "welcome", name)
	assert.Equal(t, []string{"--langs", "en"}, rest)

	name, rest = splitName([]string{"--create"})
	assert.Empty(t, name)
	assert.Equal(t, []string{"--create"}, rest)
}
