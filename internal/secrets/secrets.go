package secrets

import (
	"alumni-office/internal/platform/paths"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// DBPasswordKey names the stored database password.
const DBPasswordKey = "db_password"

// DBPasswordEnvVar takes precedence over the stored password.
const DBPasswordEnvVar = "ALUMNI_DB_PASSWORD"

var ErrNotFound = errors.New("secret not found")
var numR = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	key = numR.ReplaceAllString(key, "_")
	if key == "" {
		return "empty"
	}
	return key
}

func secretFilePath(key string) (string, error) {
	dir, err := paths.SecretsDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, sanitizeKey(key)+".bin"), nil
}

func Set(key string, value []byte) error {
	p, err := secretFilePath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), "secret-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	_ = tmp.Chmod(0o600)

	_, writeErr := tmp.Write(value)
	closeErr := tmp.Close()
	if writeErr != nil || closeErr != nil {
		_ = os.Remove(tmpName)
		if writeErr != nil {
			return writeErr
		}
		return closeErr
	}

	if err := os.Rename(tmpName, p); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

func Get(key string) ([]byte, error) {
	p, err := secretFilePath(key)
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(p)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// DBPassword prefers the environment and falls back to the secrets file.
func DBPassword() (string, error) {
	if v, ok := os.LookupEnv(DBPasswordEnvVar); ok {
		return v, nil
	}
	b, err := Get(DBPasswordKey)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
