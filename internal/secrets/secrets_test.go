package secrets

import (
	"errors"
	"os"
	"testing"

	"alumni-office/internal/platform/paths"
)

func TestSetGetRoundTrip(t *testing.T) {
	t.Setenv(paths.ConfigEnvVar, "")
	t.Setenv(paths.HomeEnvVar, t.TempDir())

	if _, err := Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := Set("db password!", []byte("s3cret")); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, err := Get("db password!")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != "s3cret" {
		t.Fatalf("unexpected secret %q", got)
	}

	p, err := secretFilePath("db password!")
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	info, err := os.Stat(p)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o600 {
		t.Fatalf("expected 0600, got %v", info.Mode().Perm())
	}
}

func TestDBPasswordPrefersEnv(t *testing.T) {
	t.Setenv(paths.ConfigEnvVar, "")
	t.Setenv(paths.HomeEnvVar, t.TempDir())

	if err := Set(DBPasswordKey, []byte("from-file")); err != nil {
		t.Fatalf("set: %v", err)
	}

	t.Setenv(DBPasswordEnvVar, "")
	os.Unsetenv(DBPasswordEnvVar)
	pw, err := DBPassword()
	if err != nil || pw != "from-file" {
		t.Fatalf("expected file password, got %q (%v)", pw, err)
	}

	t.Setenv(DBPasswordEnvVar, "from-env")
	pw, err = DBPassword()
	if err != nil || pw != "from-env" {
		t.Fatalf("expected env password, got %q (%v)", pw, err)
	}
}
