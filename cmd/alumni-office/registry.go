package main

import (
	"fmt"
	"io"
	"strings"

	"alumni-office/internal/db"
	"alumni-office/internal/registry"
	"alumni-office/internal/report"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

type cmdRegistry struct {
	common *CmdControl
}

func (c *cmdRegistry) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Inspect the names the API serves.",
		RunE:  func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "list [tables|views|reports|schemas]",
		Short:     "List allow-listed names and their statements.",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"tables", "views", "reports", "schemas"},
		RunE: func(cmd *cobra.Command, args []string) error {
			which := "tables"
			if len(args) == 1 {
				which = args[0]
			}
			return listRegistry(cmd.OutOrStdout(), which)
		},
	})

	return cmd
}

func listRegistry(w io.Writer, which string) error {
	if which == "schemas" {
		s := registry.TableSchemas()
		data := make([][]string, 0)
		for _, name := range s.Names() {
			ts, _ := s.Lookup(name)
			data = append(data, []string{name, ts.Target, strings.Join(ts.Required, ", ")})
		}
		renderTable(w, []string{"NAME", "TARGET", "REQUIRED"}, data)
		return nil
	}

	reg, ok := registry.ForKind(registry.Kind(strings.TrimSuffix(which, "s")))
	if !ok {
		return fmt.Errorf("unknown registry %q", which)
	}
	data := make([][]string, 0, reg.Len())
	for _, name := range reg.Names() {
		stmt, _ := reg.Lookup(name)
		data = append(data, []string{name, stmt})
	}
	renderTable(w, []string{"NAME", "STATEMENT"}, data)
	return nil
}

func renderTable(w io.Writer, header []string, data [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(data)
	table.Render()
}

func resultTable(w io.Writer, res db.Result) {
	data := make([][]string, 0, len(res.Rows))
	for _, row := range res.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = report.FormatCell(v)
		}
		data = append(data, cells)
	}
	renderTable(w, res.Columns, data)
}
