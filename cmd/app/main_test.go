package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/starford/docsmcp/internal"
	"github.com/starford/docsmcp/internal/session"
)

var flagEnvVars = []string{"APP_CONFIG_FILE", "DOCS_TRANSPORT", "DOCS_DIR", "PORT", "DOCS_TOOLS", "DOCS_STATELESS", "DOCS_WATCH"}

// clearEnv unsets the flag environment variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range flagEnvVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

// parseFlags runs the command with args and returns the defaults after flag
// overrides, without starting the application.
func parseFlags(t *testing.T, args ...string) *internal.Config {
	t.Helper()
	cfg := internal.NewDefaultConfig()
	cmd := newCommand()
	cmd.Action = func(_ context.Context, cmd *cli.Command) error {
		applyFlags(cmd, cfg)
		return nil
	}
	require.NoError(t, cmd.Run(context.Background(), append([]string{"docsmcp"}, args...)))
	return cfg
}

func TestApplyFlags_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := parseFlags(t)
	assert.Equal(t, internal.NewDefaultConfig(), cfg)
}

func TestApplyFlags_Overrides(t *testing.T) {
	clearEnv(t)
	cfg := parseFlags(t, "--transport", "http", "--docs", "/srv/docs", "--port", "4000", "--tools", "--stateless")

	assert.Equal(t, session.TransportHTTP, cfg.Transport.Mode)
	assert.Equal(t, "/srv/docs", cfg.Docs.Path)
	assert.Equal(t, 4000, cfg.App.HTTP.Port)
	assert.True(t, cfg.Tools.Enabled)
	assert.True(t, cfg.Transport.Stateless)
	assert.True(t, cfg.Docs.Watch)
}

func TestApplyFlags_ShortAliases(t *testing.T) {
	clearEnv(t)
	cfg := parseFlags(t, "-t", "stdio", "-p", "8081")

	assert.Equal(t, session.TransportStdio, cfg.Transport.Mode)
	assert.Equal(t, 8081, cfg.App.HTTP.Port)
}

func TestApplyFlags_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("DOCS_TRANSPORT", "sse")
	t.Setenv("DOCS_DIR", "/env/docs")
	t.Setenv("DOCS_TOOLS", "true")

	cfg := parseFlags(t)

	assert.Equal(t, session.TransportSSE, cfg.Transport.Mode)
	assert.Equal(t, "/env/docs", cfg.Docs.Path)
	assert.True(t, cfg.Tools.Enabled)
}

func TestApplyFlags_DisableWatch(t *testing.T) {
	clearEnv(t)
	cfg := parseFlags(t, "--watch=false")
	assert.False(t, cfg.Docs.Watch)
}

func TestRun_MissingExplicitConfig(t *testing.T) {
	clearEnv(t)
	err := newCommand().Run(context.Background(), []string{"docsmcp", "--config", "/nonexistent/config.yaml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

// loadFlags runs the command with args and returns the config loadConfig
// produced, without starting the application.
func loadFlags(args ...string) (*internal.Config, error) {
	var cfg *internal.Config
	cmd := newCommand()
	cmd.Action = func(_ context.Context, cmd *cli.Command) error {
		var err error
		cfg, err = loadConfig(cmd)
		return err
	}
	err := cmd.Run(context.Background(), append([]string{"docsmcp"}, args...))
	return cfg, err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestLoadConfig_FlagOverridesInvalidFileValue(t *testing.T) {
	clearEnv(t)
	p := writeConfig(t, "transport:\n  mode: bogus\n")

	cfg, err := loadFlags("--config", p, "--transport", "stdio")
	require.NoError(t, err)
	assert.Equal(t, session.TransportStdio, cfg.Transport.Mode)
}

func TestLoadConfig_InvalidFileValueRejected(t *testing.T) {
	clearEnv(t)
	p := writeConfig(t, "transport:\n  mode: bogus\n")

	_, err := loadFlags("--config", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadConfig_EnvOverridesInvalidFilePort(t *testing.T) {
	clearEnv(t)
	p := writeConfig(t, "app:\n  http:\n    port: 0\n")
	t.Setenv("PORT", "4100")

	cfg, err := loadFlags("--config", p)
	require.NoError(t, err)
	assert.Equal(t, 4100, cfg.App.HTTP.Port)
}
