package config

import (
	"alumni-office/internal/platform/paths"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

var ErrNotFound = errors.New("config not found")

// EnvPrefix scopes the environment variables that override file settings.
const EnvPrefix = "ALUMNI_"

var envKeys = map[string]string{
	"ALUMNI_API_LISTEN":            "apiListen",
	"ALUMNI_DEBUG":                 "debug",
	"ALUMNI_LOG_LEVEL":             "log.level",
	"ALUMNI_LOG_FORMAT":            "log.format",
	"ALUMNI_CORS_ALLOWED_ORIGINS":  "cors.allowedOrigins",
	"ALUMNI_RATE_LIMIT_PER_MINUTE": "api.rateLimitPerMinute",
	"ALUMNI_CACHE_MAX_AGE":         "api.cacheMaxAge",
	"ALUMNI_DB_DRIVER":             "db.driver",
	"ALUMNI_DB_HOST":               "db.host",
	"ALUMNI_DB_PORT":               "db.port",
	"ALUMNI_DB_USER":               "db.user",
	"ALUMNI_DB_NAME":               "db.database",
	"ALUMNI_DB_QUERY_TIMEOUT":      "db.queryTimeout",
	"ALUMNI_DB_MAX_OPEN_CONNS":     "db.maxOpenConns",
}

// Load reads the config file and applies environment overrides on top of it.
// It returns ErrNotFound when no config file exists.
func Load() (Config, error) {
	p, err := paths.ConfigFilePath()
	if err != nil {
		return Config{}, err
	}
	if _, err := os.Stat(p); err != nil {
		if os.IsNotExist(err) {
			return Config{}, ErrNotFound
		}
		return Config{}, err
	}
	return load(p)
}

// LoadOrDefault behaves like Load but falls back to defaults plus
// environment overrides when the file is missing.
func LoadOrDefault() (Config, error) {
	cfg, err := Load()

	if err == nil {
		return cfg, nil
	}

	if errors.Is(err, ErrNotFound) {
		return load("")
	}

	return Config{}, err
}

func load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	cfg.DB.Driver = DBDriver(strings.ToLower(strings.TrimSpace(string(cfg.DB.Driver))))
	return cfg, nil
}

func envValue(key, value string) (string, any) {
	path, ok := envKeys[key]
	if !ok {
		return "", nil
	}
	if path == "cors.allowedOrigins" {
		origins := make([]string, 0)
		for _, o := range strings.Split(value, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		return path, origins
	}
	return path, value
}

func Save(cfg Config) error {
	p, err := paths.ConfigFilePath()
	if err != nil {
		return err
	}

	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	out, err := yamlv3.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	_ = tmp.Chmod(0o600)

	_, writeErr := tmp.Write(out)
	syncErr := tmp.Sync()
	closeErr := tmp.Close()

	if writeErr != nil || syncErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		if writeErr != nil {
			return writeErr
		}
		if syncErr != nil {
			return syncErr
		}
		return closeErr
	}

	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return nil
}
