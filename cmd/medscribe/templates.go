package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jwulff/medscribe/internal/templates"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List operative-note templates",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		lib, err := loadLibrary(cfg)
		if err != nil {
			return err
		}
		writeTemplateTable(cmd.OutOrStdout(), lib.List())
		return nil
	},
}

func writeTemplateTable(w io.Writer, list []templates.Template) {
	if len(list) == 0 {
		fmt.Fprintln(w, "No templates found.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Key", "Name", "Variables", "Source"})
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)

	for _, t := range list {
		table.Append([]string{t.Key, t.Name, strings.Join(t.Variables, ", "), t.Source})
	}
	table.Render()
}
