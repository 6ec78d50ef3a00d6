package paths

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const AppName = "alumni-office"

// HomeEnvVar overrides the machine-wide directory holding config, secrets and logs.
const HomeEnvVar = "ALUMNI_OFFICE_HOME"

// ConfigEnvVar points at an explicit config file and wins over HomeEnvVar.
const ConfigEnvVar = "ALUMNI_OFFICE_CONFIG"

func BaseDir() (string, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnvVar)); home != "" {
		return filepath.Clean(home), nil
	}

	switch runtime.GOOS {
	case "windows":
		programData := os.Getenv("PROGRAMDATA")
		if programData == "" {
			programData = `C:\ProgramData`
		}
		return filepath.Join(programData, AppName), nil
	case "linux":
		return filepath.Join("/etc", AppName), nil
	case "darwin":
		return filepath.Join("/usr/local/etc", AppName), nil
	default:
		return "", errors.New("unsupported OS for machine-wide config")
	}
}

func ConfigFilePath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(ConfigEnvVar)); p != "" {
		return filepath.Clean(p), nil
	}
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "config.yaml"), nil
}

func LoggerFilePath() (string, error) {
	base, err := BaseDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "server.log"), nil
}

// SecretsDir sits next to the config file so a relocated config keeps its secrets.
func SecretsDir() (string, error) {
	cfgPath, err := ConfigFilePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(cfgPath), "secrets"), nil
}
