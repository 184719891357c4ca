package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("osci", pflag.ContinueOnError)
	addFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Parallel()
	home := t.TempDir()

	cfg, err := loadConfig(flags(t), home)
	require.NoError(t, err)

	assert.Equal(t, Config{
		BackendURL:  "http://localhost:5000",
		UserID:      "default_user",
		Timeout:     30 * time.Second,
		ChatTimeout: 2 * time.Minute,
		Log: LogConfig{
			Level:  "info",
			Dir:    filepath.Join(home, ".osci", "logs"),
			MaxAge: 7 * 24 * time.Hour,
		},
	}, cfg)
}

func TestLoadConfig_DefaultFile(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, ".osci", "config.yaml"), `
backend_url: http://agent.internal:8080
user_id: alice
chat_timeout: 5m
log:
  level: debug
  max_age: 48h
`)

	cfg, err := loadConfig(flags(t), home)
	require.NoError(t, err)

	assert.Equal(t, "http://agent.internal:8080", cfg.BackendURL)
	assert.Equal(t, "alice", cfg.UserID)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.ChatTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 48*time.Hour, cfg.Log.MaxAge)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	t.Parallel()

	t.Run("is read", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "osci.yaml")
		writeConfig(t, path, "user_id: bob\n")

		cfg, err := loadConfig(flags(t, "--config", path), t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "bob", cfg.UserID)
	})

	t.Run("must exist", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "missing.yaml")

		_, err := loadConfig(flags(t, "--config", path), t.TempDir())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "read config")
	})
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	t.Parallel()
	home := t.TempDir()
	writeConfig(t, filepath.Join(home, ".osci", "config.yaml"), "backend_url: http://file:1\nuser_id: alice\n")

	cfg, err := loadConfig(flags(t,
		"--backend-url", "http://flag:2",
		"--timeout", "10s",
		"--transcript", "chat.json",
		"--resume-transcript", "old.json",
		"--log-level", "warn",
		"--log-dir", "/tmp/osci-logs",
	), home)
	require.NoError(t, err)

	assert.Equal(t, "http://flag:2", cfg.BackendURL)
	assert.Equal(t, "alice", cfg.UserID)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.Equal(t, "chat.json", cfg.Transcript)
	assert.Equal(t, "old.json", cfg.Resume)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/osci-logs", cfg.Log.Dir)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("OSCI_BACKEND_URL", "")
	t.Setenv("API_BACKEND_URL", "http://api:9000")
	t.Setenv("OSCI_USER_ID", "carol")
	t.Setenv("OSCI_LOG_LEVEL", "error")

	cfg, err := loadConfig(flags(t), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "http://api:9000", cfg.BackendURL)
	assert.Equal(t, "carol", cfg.UserID)
	assert.Equal(t, "error", cfg.Log.Level)

	cfg, err = loadConfig(flags(t, "--user-id", "dave"), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "dave", cfg.UserID)
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"backend url", []string{"--backend-url", "not a url"}, "BackendURL must be a URL"},
		{"log level", []string{"--log-level", "verbose"}, "Log.Level must be one of debug info warn error"},
		{"timeout", []string{"--timeout", "0s"}, "Timeout must be positive"},
		{"user id", []string{"--user-id", ""}, "UserID is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := loadConfig(flags(t, tt.args...), t.TempDir())
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRootCmd_RejectsExtraArgs(t *testing.T) {
	t.Parallel()
	cmd := newRootCmd()
	cmd.SetArgs([]string{"https://github.com/a/b", "https://github.com/c/d"})
	require.Error(t, cmd.Execute())
}
