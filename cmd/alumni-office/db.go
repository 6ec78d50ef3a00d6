package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"alumni-office/internal/config"
	"alumni-office/internal/db"
	"alumni-office/internal/secrets"

	"github.com/spf13/cobra"
)

func (c *CmdControl) timeout() time.Duration {
	if c.FlagTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.FlagTimeout) * time.Second
}

func resolveDBPassword(cfg config.Config) (string, error) {
	password, err := secrets.DBPassword()
	if err == nil {
		return password, nil
	}
	if errors.Is(err, secrets.ErrNotFound) {
		if cfg.DB.Driver == config.DBDriverSQLite {
			return "", nil
		}
		return "", fmt.Errorf("db password not set; run `alumni-office password` or set %s", secrets.DBPasswordEnvVar)
	}
	return "", err
}

func openDatabase() (*db.Database, error) {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	password, err := resolveDBPassword(cfg)
	if err != nil {
		return nil, err
	}
	return db.Open(cfg, password, db.OptionsFor(cfg))
}

type cmdPassword struct {
	common *CmdControl
}

func (c *cmdPassword) command() *cobra.Command {
	return &cobra.Command{
		Use:   "password [value]",
		Short: "Store the database password next to the config (reads stdin when no value is given).",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.run,
	}
}

func (c *cmdPassword) run(cmd *cobra.Command, args []string) error {
	var value string
	if len(args) == 1 {
		value = args[0]
	} else {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		value = strings.TrimRight(line, "\r\n")
	}
	if value == "" {
		return errors.New("password is empty")
	}

	if err := secrets.Set(secrets.DBPasswordKey, []byte(value)); err != nil {
		return fmt.Errorf("failed to save db password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "DB password saved.")
	return nil
}

type cmdPing struct {
	common *CmdControl
}

func (c *cmdPing) command() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test the database connection using the current config.",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
}

func (c *cmdPing) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}
	password, err := resolveDBPassword(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), c.common.timeout())
	defer cancel()
	if err := db.TestConnection(ctx, cfg, password); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Connection OK.")
	return nil
}
