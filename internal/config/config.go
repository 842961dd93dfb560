package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL   = "http://127.0.0.1:8501"
	DefaultLogLevel = "debug"
	DefaultTitle    = "Automation Tracker"

	BackendMemory = "memory"
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultBackend      = BackendJSON
	DefaultJSONFileName = "tasks.json"
	DefaultDBFileName   = "tasks.db"

	configFileName           = ".autotrack.toml"
	configDirEnvKey          = "AUTOTRACK_CONFIG_DIR"
	trustProjectConfigEnvKey = "AUTOTRACK_TRUST_PROJECT_CONFIG"
	apiURLEnvKey             = "AUTOTRACK_API_URL"
	dataPathEnvKey           = "AUTOTRACK_DATA"
	backendEnvKey            = "AUTOTRACK_BACKEND"
	dotEnvFileName           = ".env"
)

// StorageConfig selects where tasks live between restarts.
type StorageConfig struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	SeedDemo bool   `toml:"seed_demo"`
}

// UIConfig toggles presentation-level behavior of the page.
type UIConfig struct {
	Title        string `toml:"title"`
	ShowPriority bool   `toml:"show_priority"`
}

// RosterConfig lists the submitters offered by the create form.
type RosterConfig struct {
	Members []string `toml:"members"`
	File    string   `toml:"file"`
}

// Config defines runtime configuration for autotrack.
type Config struct {
	APIURL                   string        `toml:"api_url"`
	LogLevel                 string        `toml:"log_level"`
	Storage                  StorageConfig `toml:"storage"`
	UI                       UIConfig      `toml:"ui"`
	Roster                   RosterConfig  `toml:"roster"`
	TrustedProjectConfigPath string        `toml:"-"`
}

// Default returns default configuration values.
func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		LogLevel: DefaultLogLevel,
		Storage: StorageConfig{
			Backend: DefaultBackend,
		},
		UI: UIConfig{
			Title:        DefaultTitle,
			ShowPriority: true,
		},
	}
}

// LoadDotEnv loads a .env file from the working directory when present.
// Variables already set in the environment win.
func LoadDotEnv() error {
	if _, err := os.Stat(dotEnvFileName); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := godotenv.Load(dotEnvFileName); err != nil {
		return fmt.Errorf("failed to parse %s: %w", dotEnvFileName, err)
	}
	return nil
}

// loadFile decodes the TOML file at path into cfg. A missing file or a
// directory at path is not an error.
func loadFile(path string, cfg *Config) error {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	case info.IsDir():
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func overrideConfigPath() (string, bool) {
	dir := strings.TrimSpace(os.Getenv(configDirEnvKey))
	if dir == "" {
		return "", false
	}
	return filepath.Join(dir, configFileName), true
}

func trustProjectConfig() bool {
	raw := strings.TrimSpace(os.Getenv(trustProjectConfigEnvKey))
	if raw == "" {
		return false
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}
	return value
}

// keySpec describes one settable config key.
type keySpec struct {
	name  string
	get   func(*Config) string
	parse func(string) (any, error)
}

func parseString(value string) (any, error) { return value, nil }

func parseBoolKey(name string) func(string) (any, error) {
	return func(value string) (any, error) {
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false", name)
		}
		return parsed, nil
	}
}

var keySpecs = []keySpec{
	{"api_url", func(c *Config) string { return c.APIURL }, parseString},
	{"log_level", func(c *Config) string { return c.LogLevel }, parseString},
	{"storage.backend", func(c *Config) string { return c.Storage.Backend }, func(v string) (any, error) { return ParseBackend(v) }},
	{"storage.path", func(c *Config) string { return c.Storage.Path }, parseString},
	{"storage.seed_demo", func(c *Config) string { return strconv.FormatBool(c.Storage.SeedDemo) }, parseBoolKey("storage.seed_demo")},
	{"ui.title", func(c *Config) string { return c.UI.Title }, parseString},
	{"ui.show_priority", func(c *Config) string { return strconv.FormatBool(c.UI.ShowPriority) }, parseBoolKey("ui.show_priority")},
	{"roster.members", func(c *Config) string { return strings.Join(c.Roster.Members, ",") }, func(v string) (any, error) { return splitCSV(v), nil }},
	{"roster.file", func(c *Config) string { return c.Roster.File }, parseString},
}

func lookupKey(key string) (keySpec, bool) {
	for _, spec := range keySpecs {
		if spec.name == key {
			return spec, true
		}
	}
	return keySpec{}, false
}

// AllowedKeys returns the set of valid config keys.
func AllowedKeys() []string {
	keys := make([]string, 0, len(keySpecs))
	for _, spec := range keySpecs {
		keys = append(keys, spec.name)
	}
	return keys
}

// IsAllowedKey checks if a key is a valid config key.
func IsAllowedKey(key string) bool {
	_, ok := lookupKey(key)
	return ok
}

// Get returns the value of a config key.
func (c *Config) Get(key string) (string, error) {
	spec, ok := lookupKey(key)
	if !ok {
		return "", fmt.Errorf("unknown key: %s", key)
	}
	return spec.get(c), nil
}

// GlobalPath returns the path to the global config file.
func GlobalPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configFileName), nil
}

// ProjectPath returns the path to the project config file.
func ProjectPath() (string, error) {
	if path, ok := overrideConfigPath(); ok {
		return path, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, configFileName), nil
}

// SetKey reads the TOML file at path, sets key=value, and writes it back.
func SetKey(path, key, value string) error {
	spec, ok := lookupKey(key)
	if !ok {
		return fmt.Errorf("unknown key: %s", key)
	}

	data := make(map[string]any)
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &data); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
	}

	parsedValue, err := spec.parse(strings.TrimSpace(value))
	if err != nil {
		return err
	}
	if err := setNestedKey(data, strings.Split(key, "."), parsedValue); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(data)
}

// Load reads config from trusted files and applies env overrides.
func Load() (*Config, error) {
	cfg := Default()

	if overridePath, ok := overrideConfigPath(); ok {
		if err := loadFile(overridePath, &cfg); err != nil {
			return nil, err
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			if err := loadFile(filepath.Join(home, configFileName), &cfg); err != nil {
				return nil, err
			}
		}

		if trustProjectConfig() {
			if cwd, err := os.Getwd(); err == nil {
				projectPath := filepath.Join(cwd, configFileName)
				info, statErr := os.Stat(projectPath)
				switch {
				case statErr == nil && !info.IsDir():
					if err := loadFile(projectPath, &cfg); err != nil {
						return nil, err
					}
					cfg.TrustedProjectConfigPath = projectPath
				case statErr != nil && !os.IsNotExist(statErr):
					return nil, statErr
				}
			}
		}
	}

	if apiURL := os.Getenv(apiURLEnvKey); apiURL != "" {
		cfg.APIURL = apiURL
	}
	if backend := strings.TrimSpace(os.Getenv(backendEnvKey)); backend != "" {
		cfg.Storage.Backend = backend
	}
	if dataPath := os.Getenv(dataPathEnvKey); dataPath != "" {
		cfg.Storage.Path = dataPath
	}

	if err := cfg.normalizeStorage(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.UI.Title) == "" {
		cfg.UI.Title = DefaultTitle
	}

	return &cfg, nil
}

// ParseBackend validates a storage backend name.
func ParseBackend(raw string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch value {
	case "":
		return DefaultBackend, nil
	case BackendMemory, BackendJSON, BackendSQLite:
		return value, nil
	default:
		return "", fmt.Errorf("invalid storage backend %q (allowed: %s, %s, %s)", raw, BackendMemory, BackendJSON, BackendSQLite)
	}
}

func (c *Config) normalizeStorage() error {
	backend, err := ParseBackend(c.Storage.Backend)
	if err != nil {
		return err
	}
	c.Storage.Backend = backend

	if c.Storage.Path != "" || backend == BackendMemory {
		return nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	switch backend {
	case BackendSQLite:
		c.Storage.Path = filepath.Join(cwd, DefaultDBFileName)
	default:
		c.Storage.Path = filepath.Join(cwd, DefaultJSONFileName)
	}
	return nil
}

func setNestedKey(data map[string]any, parts []string, value any) error {
	if len(parts) == 0 {
		return fmt.Errorf("invalid config key")
	}
	if len(parts) == 1 {
		data[parts[0]] = value
		return nil
	}
	childRaw, ok := data[parts[0]]
	if !ok {
		child := map[string]any{}
		data[parts[0]] = child
		return setNestedKey(child, parts[1:], value)
	}
	child, ok := childRaw.(map[string]any)
	if !ok {
		return fmt.Errorf("cannot set nested key %q", strings.Join(parts, "."))
	}
	return setNestedKey(child, parts[1:], value)
}

func splitCSV(value string) []string {
	value = strings.TrimSpace(value)
	if value == "" {
		return []string{}
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
