package main

import (
	"bytes"
	"strings"
	"testing"

	"alumni-office/internal/config"
	"alumni-office/internal/platform/paths"
	"alumni-office/internal/secrets"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRegistry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, listRegistry(&buf, "tables"))
	out := buf.String()
	assert.Contains(t, out, "CHAPTERS")
	assert.Contains(t, out, "SELECT * FROM ALLEVENTS")

	buf.Reset()
	require.NoError(t, listRegistry(&buf, "schemas"))
	assert.Contains(t, buf.String(), "Chapter_ID, Chapter_Location")

	assert.Error(t, listRegistry(&buf, "indexes"))
}

func TestConfigSetSaves(t *testing.T) {
	t.Setenv(paths.HomeEnvVar, t.TempDir())
	t.Setenv(paths.ConfigEnvVar, "")

	c := cmdConfigSet{common: &CmdControl{}}
	cmd := c.command()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--db-driver", "postgres", "--db-host", "db.internal", "--rate-limit", "120"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "Config saved.")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DBDriverPostgres, cfg.DB.Driver)
	assert.Equal(t, config.DefaultPort(config.DBDriverPostgres), cfg.DB.Port)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 120, cfg.API.RateLimitPerMinute)
}

func TestConfigSetRejectsUnknownDriver(t *testing.T) {
	t.Setenv(paths.HomeEnvVar, t.TempDir())
	t.Setenv(paths.ConfigEnvVar, "")

	c := cmdConfigSet{common: &CmdControl{}}
	cmd := c.command()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--db-driver", "mysql"})
	assert.Error(t, cmd.Execute())
}

func TestPasswordFromStdin(t *testing.T) {
	t.Setenv(paths.HomeEnvVar, t.TempDir())
	t.Setenv(paths.ConfigEnvVar, "")

	c := cmdPassword{common: &CmdControl{}}
	cmd := c.command()
	cmd.SetIn(strings.NewReader("s3cret\n"))
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{})
	require.NoError(t, cmd.Execute())

	got, err := secrets.Get(secrets.DBPasswordKey)
	require.NoError(t, err)
	assert.Equal(t, "s3cret", string(got))
}
