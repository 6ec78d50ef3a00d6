package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"alumni-office/internal/config"
	"alumni-office/internal/platform/paths"

	"github.com/spf13/cobra"
)

type cmdConfig struct {
	common *CmdControl
}

func (c *cmdConfig) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or edit the daemon configuration.",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadOrDefault()
			if err != nil {
				return err
			}
			printConfigSummary(cmd.OutOrStdout(), cfg)
			return nil
		},
	})

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := config.Load()
			if err == nil && !force {
				return errors.New("config already exists; use --force to overwrite")
			}
			if err != nil && !errors.Is(err, config.ErrNotFound) && !force {
				return err
			}
			if err := config.Save(config.Default()); err != nil {
				return err
			}
			path, _ := paths.ConfigFilePath()
			fmt.Fprintf(cmd.OutOrStdout(), "Config written to %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing config")
	cmd.AddCommand(initCmd)

	var cmdSet = cmdConfigSet{common: c.common}
	cmd.AddCommand(cmdSet.command())

	return cmd
}

type cmdConfigSet struct {
	common *CmdControl

	flagAPIListen string
	flagDebug     bool
	flagDriver    string
	flagHost      string
	flagPort      int
	flagUser      string
	flagName      string
	flagOrigins   []string
	flagRateLimit int
}

func (c *cmdConfigSet) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change configuration values and save them.",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}

	cmd.Flags().StringVar(&c.flagAPIListen, "api-listen", "", "API listen address (host:port)")
	cmd.Flags().BoolVar(&c.flagDebug, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&c.flagDriver, "db-driver", "", "DB driver ("+strings.Join(config.DBDriverOptions(), ", ")+")")
	cmd.Flags().StringVar(&c.flagHost, "db-host", "", "DB host")
	cmd.Flags().IntVar(&c.flagPort, "db-port", 0, "DB port (1-65535)")
	cmd.Flags().StringVar(&c.flagUser, "db-user", "", "DB user")
	cmd.Flags().StringVar(&c.flagName, "db-name", "", "DB service or database name")
	cmd.Flags().StringSliceVar(&c.flagOrigins, "cors-origin", nil, "Allowed CORS origin (repeatable)")
	cmd.Flags().IntVar(&c.flagRateLimit, "rate-limit", 0, "Requests per minute per client (0 disables)")

	return cmd
}

func (c *cmdConfigSet) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	changed := false

	if flags.Changed("api-listen") {
		cfg.APIListen = strings.TrimSpace(c.flagAPIListen)
		changed = true
	}
	if flags.Changed("debug") {
		cfg.Debug = c.flagDebug
		changed = true
	}
	if flags.Changed("db-driver") {
		val := config.DBDriver(strings.ToLower(strings.TrimSpace(c.flagDriver)))
		if !isAllowedDriver(val) {
			return fmt.Errorf("invalid db-driver: %q", c.flagDriver)
		}
		if cfg.DB.Driver != val && !flags.Changed("db-port") {
			cfg.DB.Port = config.DefaultPort(val)
		}
		cfg.DB.Driver = val
		changed = true
	}
	if flags.Changed("db-host") {
		cfg.DB.Host = strings.TrimSpace(c.flagHost)
		changed = true
	}
	if flags.Changed("db-port") {
		cfg.DB.Port = c.flagPort
		changed = true
	}
	if flags.Changed("db-user") {
		cfg.DB.User = strings.TrimSpace(c.flagUser)
		changed = true
	}
	if flags.Changed("db-name") {
		cfg.DB.Database = strings.TrimSpace(c.flagName)
		changed = true
	}
	if flags.Changed("cors-origin") {
		cfg.CORS.AllowedOrigins = c.flagOrigins
		changed = true
	}
	if flags.Changed("rate-limit") {
		cfg.API.RateLimitPerMinute = c.flagRateLimit
		changed = true
	}

	if !changed {
		fmt.Fprintln(cmd.OutOrStdout(), "No changes requested. Example:")
		fmt.Fprintln(cmd.OutOrStdout(), "  alumni-office config set --db-host db.example.org --db-port 1521")
		return nil
	}

	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfg); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Config saved.")
	return nil
}

func isAllowedDriver(val config.DBDriver) bool {
	for _, v := range config.DBDriverValues() {
		if v == val {
			return true
		}
	}
	return false
}

func printConfigSummary(w io.Writer, cfg config.Config) {
	fmt.Fprintln(w, "Config summary:")
	fmt.Fprintf(w, "  API Listen: %s\n", cfg.APIListen)
	fmt.Fprintf(w, "  Debug: %v\n", cfg.Debug)
	fmt.Fprintf(w, "  Log: %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		fmt.Fprintln(w, "  CORS Origins: (none)")
	} else {
		fmt.Fprintf(w, "  CORS Origins: %s\n", strings.Join(cfg.CORS.AllowedOrigins, ", "))
	}
	if cfg.API.RateLimitPerMinute > 0 {
		fmt.Fprintf(w, "  Rate Limit: %d/min\n", cfg.API.RateLimitPerMinute)
	} else {
		fmt.Fprintln(w, "  Rate Limit: (off)")
	}
	fmt.Fprintf(w, "  Cache Max-Age: %ds\n", cfg.API.CacheMaxAge)
	fmt.Fprintf(w, "  DB Driver: %s\n", cfg.DB.Driver)
	fmt.Fprintf(w, "  DB Host: %s\n", cfg.DB.Host)
	fmt.Fprintf(w, "  DB Port: %d\n", cfg.DB.Port)
	fmt.Fprintf(w, "  DB User: %s\n", cfg.DB.User)
	fmt.Fprintf(w, "  DB Database: %s\n", cfg.DB.Database)
	fmt.Fprintf(w, "  DB Query Timeout: %s\n", cfg.DB.QueryTimeout)
}
