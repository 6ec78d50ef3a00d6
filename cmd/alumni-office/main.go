// Command alumni-office configures and inspects an alumni-officed install.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// CmdControl holds the flags shared by every subcommand.
type CmdControl struct {
	FlagTimeout int
}

func main() {
	common := CmdControl{}

	app := &cobra.Command{
		Use:               "alumni-office",
		Short:             "Manage the alumni-office data API",
		SilenceUsage:      true,
		CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	}
	app.PersistentFlags().IntVar(&common.FlagTimeout, "timeout", 10, "Database timeout in seconds")

	var cmdConfig = cmdConfig{common: &common}
	app.AddCommand(cmdConfig.command())

	var cmdPassword = cmdPassword{common: &common}
	app.AddCommand(cmdPassword.command())

	var cmdPing = cmdPing{common: &common}
	app.AddCommand(cmdPing.command())

	var cmdRegistry = cmdRegistry{common: &common}
	app.AddCommand(cmdRegistry.command())

	var cmdDump = cmdDump{common: &common}
	app.AddCommand(cmdDump.command())

	var cmdReport = cmdReport{common: &common}
	app.AddCommand(cmdReport.command())

	app.InitDefaultHelpCmd()

	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
