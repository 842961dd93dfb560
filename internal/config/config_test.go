package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.APIURL != "http://127.0.0.1:8501" {
		t.Fatalf("expected default API URL, got %q", cfg.APIURL)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Fatalf("expected default log level %q, got %q", DefaultLogLevel, cfg.LogLevel)
	}
	if cfg.Storage.Backend != BackendJSON {
		t.Fatalf("expected json backend, got %q", cfg.Storage.Backend)
	}
	if !cfg.UI.ShowPriority {
		t.Fatal("expected priority to be shown by default")
	}
	if cfg.UI.Title != DefaultTitle {
		t.Fatalf("expected title %q, got %q", DefaultTitle, cfg.UI.Title)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".autotrack.toml")
	if err := os.WriteFile(path, []byte(`api_url = "http://localhost:9999"
log_level = "warn"

[storage]
backend = "sqlite"
path = "/tmp/tracker.db"

[ui]
show_priority = false

[roster]
members = ["Anna Hosp", "Jan Krueger"]
`), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:9999" {
		t.Fatalf("expected api_url 'http://localhost:9999', got %q", cfg.APIURL)
	}
	if cfg.LogLevel != "warn" {
		t.Fatalf("expected log_level 'warn', got %q", cfg.LogLevel)
	}
	if cfg.Storage.Backend != BackendSQLite || cfg.Storage.Path != "/tmp/tracker.db" {
		t.Fatalf("unexpected storage config: %+v", cfg.Storage)
	}
	if cfg.UI.ShowPriority {
		t.Fatal("expected show_priority false")
	}
	if !slices.Equal(cfg.Roster.Members, []string{"Anna Hosp", "Jan Krueger"}) {
		t.Fatalf("unexpected roster: %v", cfg.Roster.Members)
	}
}

func TestLoadFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFile("/nonexistent/path/.autotrack.toml", &cfg); err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Fatalf("defaults should be preserved")
	}
}

func TestIsAllowedKey(t *testing.T) {
	for _, key := range []string{
		"api_url",
		"log_level",
		"storage.backend",
		"storage.path",
		"storage.seed_demo",
		"ui.title",
		"ui.show_priority",
		"roster.members",
		"roster.file",
	} {
		if !IsAllowedKey(key) {
			t.Fatalf("expected %q to be allowed", key)
		}
	}
	if IsAllowedKey("invalid") {
		t.Fatal("expected 'invalid' to not be allowed")
	}
}

func TestGetKey(t *testing.T) {
	cfg := Config{
		APIURL:   "http://test:1234",
		LogLevel: "warn",
		Storage:  StorageConfig{Backend: BackendMemory, SeedDemo: true},
		UI:       UIConfig{Title: "Bots", ShowPriority: false},
		Roster:   RosterConfig{Members: []string{"a", "b"}},
	}

	cases := map[string]string{
		"api_url":           "http://test:1234",
		"log_level":         "warn",
		"storage.backend":   "memory",
		"storage.seed_demo": "true",
		"ui.title":          "Bots",
		"ui.show_priority":  "false",
		"roster.members":    "a,b",
	}
	for key, want := range cases {
		got, err := cfg.Get(key)
		if err != nil || got != want {
			t.Fatalf("%s: expected %q, got %q (err: %v)", key, want, got, err)
		}
	}
	if _, err := cfg.Get("invalid"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}

func TestSetKeyCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.toml")
	if err := SetKey(path, "api_url", "http://127.0.0.1:9000"); err != nil {
		t.Fatalf("set: %v", err)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9000" {
		t.Fatalf("unexpected api_url %q", cfg.APIURL)
	}
}

func TestSetKeyUpdatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "existing.toml")
	if err := os.WriteFile(path, []byte("log_level = \"info\"\napi_url = \"http://keep\"\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if err := SetKey(path, "log_level", "error"); err != nil {
		t.Fatalf("set: %v", err)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "error" {
		t.Fatalf("expected 'error', got %q", cfg.LogLevel)
	}
	if cfg.APIURL != "http://keep" {
		t.Fatalf("expected preserved api_url 'http://keep', got %q", cfg.APIURL)
	}
}

func TestSetNestedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.toml")
	if err := SetKey(path, "storage.backend", "SQLite"); err != nil {
		t.Fatalf("set backend: %v", err)
	}
	if err := SetKey(path, "ui.show_priority", "false"); err != nil {
		t.Fatalf("set show_priority: %v", err)
	}
	if err := SetKey(path, "roster.members", "Anna Hosp, Jan Krueger"); err != nil {
		t.Fatalf("set members: %v", err)
	}

	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Fatalf("expected sqlite backend, got %q", cfg.Storage.Backend)
	}
	if cfg.UI.ShowPriority {
		t.Fatal("expected show_priority false")
	}
	if !slices.Equal(cfg.Roster.Members, []string{"Anna Hosp", "Jan Krueger"}) {
		t.Fatalf("unexpected members: %v", cfg.Roster.Members)
	}
}

func TestSetKeyRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.toml")
	if err := SetKey(path, "invalid_key", "value"); err == nil {
		t.Fatal("expected error for invalid key")
	}
	if err := SetKey(path, "storage.backend", "postgres"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	if err := SetKey(path, "ui.show_priority", "maybe"); err == nil {
		t.Fatal("expected error for non-bool value")
	}
}

func TestConfigDirOverridePaths(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(configDirEnvKey, dir)

	globalPath, err := GlobalPath()
	if err != nil {
		t.Fatalf("global path: %v", err)
	}
	if globalPath != filepath.Join(dir, ".autotrack.toml") {
		t.Fatalf("unexpected global path: %s", globalPath)
	}

	projectPath, err := ProjectPath()
	if err != nil {
		t.Fatalf("project path: %v", err)
	}
	if projectPath != filepath.Join(dir, ".autotrack.toml") {
		t.Fatalf("unexpected project path: %s", projectPath)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	configDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(configDir, ".autotrack.toml"), []byte("api_url = \"http://127.0.0.1:9001\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configDirEnvKey, configDir)
	t.Setenv(apiURLEnvKey, "http://127.0.0.1:9002")
	t.Setenv(backendEnvKey, "sqlite")
	t.Setenv(dataPathEnvKey, "/tmp/custom.db")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://127.0.0.1:9002" {
		t.Fatalf("expected env api url, got %q", cfg.APIURL)
	}
	if cfg.Storage.Backend != BackendSQLite {
		t.Fatalf("expected env backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != "/tmp/custom.db" {
		t.Fatalf("expected env data path, got %q", cfg.Storage.Path)
	}
}

func TestLoadDefaultsDataPathPerBackend(t *testing.T) {
	t.Setenv(configDirEnvKey, t.TempDir())
	t.Setenv(apiURLEnvKey, "")
	t.Setenv(dataPathEnvKey, "")

	workspace := t.TempDir()
	t.Chdir(workspace)

	t.Setenv(backendEnvKey, "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if filepath.Base(cfg.Storage.Path) != DefaultJSONFileName {
		t.Fatalf("expected tasks.json default, got %q", cfg.Storage.Path)
	}

	t.Setenv(backendEnvKey, "sqlite")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if filepath.Base(cfg.Storage.Path) != DefaultDBFileName {
		t.Fatalf("expected tasks.db default, got %q", cfg.Storage.Path)
	}

	t.Setenv(backendEnvKey, "memory")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Path != "" {
		t.Fatalf("expected no data path for memory backend, got %q", cfg.Storage.Path)
	}

	t.Setenv(backendEnvKey, "redis")
	if _, err := Load(); err == nil {
		t.Fatal("expected invalid backend error")
	}
}

func TestLoadDotEnv(t *testing.T) {
	workspace := t.TempDir()
	t.Chdir(workspace)
	t.Setenv(apiURLEnvKey, "")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("missing .env should not error: %v", err)
	}

	if err := os.WriteFile(filepath.Join(workspace, ".env"), []byte("AUTOTRACK_DOTENV_PROBE=from-dotenv\n"), 0644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("AUTOTRACK_DOTENV_PROBE", "")
	os.Unsetenv("AUTOTRACK_DOTENV_PROBE")

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("load .env: %v", err)
	}
	if got := os.Getenv("AUTOTRACK_DOTENV_PROBE"); got != "from-dotenv" {
		t.Fatalf("expected value from .env, got %q", got)
	}
}
