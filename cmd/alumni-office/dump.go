package main

import (
	"context"
	"fmt"
	"os"

	"alumni-office/internal/registry"
	"alumni-office/internal/report"

	"github.com/spf13/cobra"
)

type cmdDump struct {
	common *CmdControl
}

func (c *cmdDump) command() *cobra.Command {
	return &cobra.Command{
		Use:       "dump <table|view> <name>",
		Short:     "Print every row of an allow-listed table or view.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{"table", "view"},
		RunE:      c.run,
	}
}

func (c *cmdDump) run(cmd *cobra.Command, args []string) error {
	kind := registry.Kind(args[0])
	if kind != registry.KindTable && kind != registry.KindView {
		return fmt.Errorf("unknown kind %q; want table or view", args[0])
	}
	reg, _ := registry.ForKind(kind)
	stmt, ok := reg.Lookup(args[1])
	if !ok {
		return fmt.Errorf("the %s %q does not exist", kind, args[1])
	}

	conn, err := openDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), c.common.timeout())
	defer cancel()
	res, err := conn.FetchAll(ctx, args[1], stmt)
	if err != nil {
		return err
	}
	if res.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found")
		return nil
	}

	resultTable(cmd.OutOrStdout(), res)
	return nil
}

type cmdReport struct {
	common *CmdControl

	flagOutput string
}

func (c *cmdReport) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <name>",
		Short: "Render a report to a PDF file.",
		Args:  cobra.ExactArgs(1),
		RunE:  c.run,
	}
	cmd.Flags().StringVarP(&c.flagOutput, "output", "o", "", "Output file (default <name>.pdf)")
	return cmd
}

func (c *cmdReport) run(cmd *cobra.Command, args []string) error {
	name := args[0]
	stmt, ok := registry.Reports().Lookup(name)
	if !ok {
		return fmt.Errorf("the report %q does not exist", name)
	}

	conn, err := openDatabase()
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), c.common.timeout())
	defer cancel()
	res, err := conn.FetchAll(ctx, name, stmt)
	if err != nil {
		return err
	}
	if res.Empty() {
		fmt.Fprintln(cmd.OutOrStdout(), "No records found; thus PDF cannot be generated")
		return nil
	}

	pdf, err := report.New().Render(name, res)
	if err != nil {
		return err
	}

	out := c.flagOutput
	if out == "" {
		out = name + ".pdf"
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d rows, %d bytes).\n", out, len(res.Rows), len(pdf))
	return nil
}
