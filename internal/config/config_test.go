package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// cliWithPath returns a CLI struct pointing at the given config file.
func cliWithPath(path string) *CLI {
	return &CLI{Config: path}
}

// writeConfig writes data to a config.toml in a fresh temp dir and returns its path.
func writeConfig(t *testing.T, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// withSearchPaths swaps the config search paths for the duration of a test.
func withSearchPaths(t *testing.T, paths []string) {
	t.Helper()
	orig := configSearchPaths
	configSearchPaths = paths
	t.Cleanup(func() { configSearchPaths = orig })
}

func TestLoad_ValidConfig(t *testing.T) {
	staticDir := t.TempDir()
	path := writeConfig(t, `
[server]
host = "127.0.0.1"
port = 9000
body_max_bytes = 5242880
static_dir = "`+filepath.ToSlash(staticDir)+`"

[upstream]
user_agent = "test-agent/1.0"
timeout_seconds = 60
idle_connections = 50

[log]
level = "debug"
format = "text"
`)

	cfg, err := Load(cliWithPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9000)
	}
	if cfg.Server.StaticDir != filepath.ToSlash(staticDir) {
		t.Errorf("Server.StaticDir = %q, want %q", cfg.Server.StaticDir, staticDir)
	}
	if cfg.Upstream.UserAgent != "test-agent/1.0" {
		t.Errorf("Upstream.UserAgent = %q, want %q", cfg.Upstream.UserAgent, "test-agent/1.0")
	}
	if cfg.Upstream.TimeoutSeconds != 60 {
		t.Errorf("Upstream.TimeoutSeconds = %d, want %d", cfg.Upstream.TimeoutSeconds, 60)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, "text")
	}
	if cfg.FilePath() != path {
		t.Errorf("FilePath() = %q, want %q", cfg.FilePath(), path)
	}
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	withSearchPaths(t, []string{filepath.Join(t.TempDir(), "missing.toml")})

	cfg, err := Load(&CLI{})
	if err != nil {
		t.Fatalf("Load() error = %v; a missing optional config should fall back to defaults", err)
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("default Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 3000 {
		t.Errorf("default Server.Port = %d, want %d", cfg.Server.Port, 3000)
	}
	if cfg.Server.BodyMaxBytes != 1024*1024 {
		t.Errorf("default Server.BodyMaxBytes = %d, want %d", cfg.Server.BodyMaxBytes, 1024*1024)
	}
	if cfg.Upstream.UserAgent != DefaultUserAgent {
		t.Errorf("default Upstream.UserAgent = %q, want %q", cfg.Upstream.UserAgent, DefaultUserAgent)
	}
	if cfg.Upstream.TimeoutSeconds != 0 {
		t.Errorf("default Upstream.TimeoutSeconds = %d, want 0 (no timeout)", cfg.Upstream.TimeoutSeconds)
	}
	if cfg.Upstream.DialTimeoutSeconds != 0 || cfg.Upstream.TLSHandshakeTimeoutSeconds != 0 {
		t.Errorf("default dial/TLS timeouts = %d/%d, want 0/0 (unbounded)",
			cfg.Upstream.DialTimeoutSeconds, cfg.Upstream.TLSHandshakeTimeoutSeconds)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if cfg.Log.Format != "json" {
		t.Errorf("default Log.Format = %q, want %q", cfg.Log.Format, "json")
	}
	if cfg.Metrics.Path != "/metrics" {
		t.Errorf("default Metrics.Path = %q, want %q", cfg.Metrics.Path, "/metrics")
	}
	if cfg.FilePath() != "" {
		t.Errorf("FilePath() = %q, want empty", cfg.FilePath())
	}
}

func TestLoad_SearchPathFound(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 8081\n")
	withSearchPaths(t, []string{filepath.Join(t.TempDir(), "missing.toml"), path})

	cfg, err := Load(&CLI{})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 8081 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8081)
	}
}

func TestLoad_PortFromCLI(t *testing.T) {
	withSearchPaths(t, nil)

	cfg, err := Load(&CLI{Port: 4567})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 4567 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 4567)
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "verbose"
`)

	_, err := Load(cliWithPath(path))
	if err == nil {
		t.Fatal("Load() expected error for invalid log level, got nil")
	}
}

func TestLoad_InvalidLogFormat(t *testing.T) {
	path := writeConfig(t, `
[log]
format = "xml"
`)

	_, err := Load(cliWithPath(path))
	if err == nil {
		t.Fatal("Load() expected error for invalid log format, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(cliWithPath("/nonexistent/config.toml"))
	if err == nil {
		t.Fatal("Load() expected error for missing explicit file, got nil")
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "[server\nport = ")

	_, err := Load(cliWithPath(path))
	if err == nil {
		t.Fatal("Load() expected error for malformed TOML, got nil")
	}
	if !strings.Contains(err.Error(), "parse") {
		t.Errorf("error = %q, want mention of parse", err)
	}
}

func TestLoad_CLIOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
host = "0.0.0.0"
port = 8000

[upstream]
user_agent = "toml-agent"

[log]
level = "info"
`)
	staticDir := t.TempDir()

	cli := &CLI{
		Config:    path,
		Host:      "127.0.0.1",
		Port:      3001,
		LogLevel:  "debug",
		UserAgent: "cli-agent",
		StaticDir: staticDir,
	}

	cfg, err := Load(cli)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, want %q (CLI override)", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 3001 {
		t.Errorf("Server.Port = %d, want %d (CLI override)", cfg.Server.Port, 3001)
	}
	if cfg.Upstream.UserAgent != "cli-agent" {
		t.Errorf("Upstream.UserAgent = %q, want %q (CLI override)", cfg.Upstream.UserAgent, "cli-agent")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q (CLI override)", cfg.Log.Level, "debug")
	}
	if cfg.Server.StaticDir != staticDir {
		t.Errorf("Server.StaticDir = %q, want %q (CLI override)", cfg.Server.StaticDir, staticDir)
	}
}

func TestLoad_NumericBounds(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"negative port", "[server]\nport = -1\n"},
		{"port too large", "[server]\nport = 70000\n"},
		{"negative body_max_bytes", "[server]\nbody_max_bytes = -1\n"},
		{"negative timeout", "[upstream]\ntimeout_seconds = -5\n"},
		{"negative idle_connections", "[upstream]\nidle_connections = -2\n"},
		{"negative dial timeout", "[upstream]\ndial_timeout_seconds = -1\n"},
		{"negative tls handshake timeout", "[upstream]\ntls_handshake_timeout_seconds = -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.data)
			if _, err := Load(cliWithPath(path)); err == nil {
				t.Fatalf("Load() expected error for %s, got nil", tt.name)
			}
		})
	}
}

func TestLoad_StaticDirMissing(t *testing.T) {
	withSearchPaths(t, nil)

	_, err := Load(&CLI{StaticDir: filepath.Join(t.TempDir(), "nope")})
	if err == nil {
		t.Fatal("Load() expected error for missing static_dir, got nil")
	}
	if !strings.Contains(err.Error(), "static_dir") {
		t.Errorf("error = %q, want mention of static_dir", err)
	}
}

func TestLoad_StaticDirIsFile(t *testing.T) {
	withSearchPaths(t, nil)
	file := writeConfig(t, "# not a dir")

	_, err := Load(&CLI{StaticDir: file})
	if err == nil {
		t.Fatal("Load() expected error for static_dir pointing at a file, got nil")
	}
}

func TestLoad_RateLimitConfig_Enabled(t *testing.T) {
	path := writeConfig(t, `
[server.rate_limit]
enabled = true
requests_per_second = 50.0
`)

	cfg, err := Load(cliWithPath(path))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Server.RateLimit.Enabled {
		t.Error("expected RateLimit.Enabled = true")
	}
	if cfg.Server.RateLimit.RequestsPerSecond != 50.0 {
		t.Errorf("RateLimit.RequestsPerSecond = %v, want 50.0", cfg.Server.RateLimit.RequestsPerSecond)
	}
}

func TestLoad_RateLimitConfig_BadValue(t *testing.T) {
	path := writeConfig(t, `
[server.rate_limit]
enabled = true
requests_per_second = 0
`)

	_, err := Load(cliWithPath(path))
	if err == nil {
		t.Fatal("Load() expected error for rate limit enabled with requests_per_second=0, got nil")
	}
	if !strings.Contains(err.Error(), "requests_per_second") {
		t.Errorf("error = %q, want mention of requests_per_second", err)
	}
}

func TestWarnPermissions_Loose(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not meaningful on Windows")
	}
	path := writeConfig(t, "# test")
	if err := os.Chmod(path, 0o666); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{filePath: path}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg.WarnPermissions(logger)

	if !strings.Contains(buf.String(), "writable by group/others") {
		t.Errorf("expected permission warning, got: %q", buf.String())
	}
}

func TestWarnPermissions_Strict(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not meaningful on Windows")
	}
	path := writeConfig(t, "# test")
	if err := os.Chmod(path, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{filePath: path}
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	cfg.WarnPermissions(logger)

	if buf.Len() != 0 {
		t.Errorf("expected no warning for 0644 file, got: %q", buf.String())
	}
}

func TestWarnPermissions_NoFile(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}))
	(&Config{}).WarnPermissions(logger)

	if buf.Len() != 0 {
		t.Errorf("expected no output when running on defaults, got: %q", buf.String())
	}
}

func TestFindConfigInPaths_NotFound(t *testing.T) {
	got := findConfigInPaths([]string{"/nonexistent/a.toml", "/nonexistent/b.toml"})
	if got != "" {
		t.Errorf("findConfigInPaths() = %q, want empty", got)
	}
}

func TestFindConfigInPaths_Priority(t *testing.T) {
	path1 := writeConfig(t, "")
	path2 := writeConfig(t, "")

	got := findConfigInPaths([]string{path1, path2})
	if got != path1 {
		t.Errorf("findConfigInPaths() = %q, want first match %q", got, path1)
	}
}

func TestLoad_MetricsPathConflicts(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{"no leading slash", "metrics", "start with"},
		{"root", "/", "control panel"},
		{"proxy exact", "/proxy", "conflicts"},
		{"proxy sub", "/proxy/metrics", "conflicts"},
		{"healthz", "/healthz", "conflicts"},
		{"status", "/status", "conflicts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, `
[metrics]
enabled = true
path = "`+tt.path+`"
`)

			_, err := Load(cliWithPath(path))
			if err == nil {
				t.Fatalf("Load() expected error for metrics.path=%q, got nil", tt.path)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoad_MetricsDisabledSkipsPathValidation(t *testing.T) {
	path := writeConfig(t, `
[metrics]
enabled = false
path = "bad-no-slash"
`)

	if _, err := Load(cliWithPath(path)); err != nil {
		t.Fatalf("Load() error = %v; disabled metrics should skip path validation", err)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	sc := &ServerConfig{Host: "127.0.0.1", Port: 3000}
	want := "127.0.0.1:3000"
	if got := sc.Addr(); got != want {
		t.Errorf("Addr() = %q, want %q", got, want)
	}
}
