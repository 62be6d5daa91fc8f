package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jwulff/medscribe/internal/db"
	"github.com/jwulff/medscribe/internal/export"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var errNoArchive = errors.New("report archive disabled (archive_path is empty)")

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List archived reports",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		archive, err := archiveFromConfig()
		if err != nil {
			return err
		}
		defer archive.Close()

		reports, err := archive.Reports(limit)
		if err != nil {
			return err
		}
		writeReportTable(cmd.OutOrStdout(), reports, time.Now())
		return nil
	},
}

var reportsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asHTML, _ := cmd.Flags().GetBool("html")
		archive, err := archiveFromConfig()
		if err != nil {
			return err
		}
		defer archive.Close()

		rep, err := archive.Report(args[0])
		if err != nil {
			return err
		}
		if rep == nil {
			return fmt.Errorf("report %s not found", args[0])
		}
		return writeReport(cmd.OutOrStdout(), rep, asHTML)
	},
}

func init() {
	reportsCmd.Flags().Int("limit", 20, "Maximum number of reports to list")
	reportsShowCmd.Flags().Bool("html", false, "Print the printable HTML document")
	reportsCmd.AddCommand(reportsShowCmd)
}

func archiveFromConfig() (*db.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	archive, err := openArchive(cfg)
	if err != nil {
		return nil, err
	}
	if archive == nil {
		return nil, errNoArchive
	}
	return archive, nil
}

func writeReportTable(w io.Writer, reports []db.Report, now time.Time) {
	if len(reports) == 0 {
		fmt.Fprintln(w, "No reports archived.")
		return
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"ID", "Title", "Saved"})
	table.SetBorder(false)
	table.SetCenterSeparator("|")
	table.SetColumnSeparator("|")
	table.SetRowSeparator("-")
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)

	for _, r := range reports {
		table.Append([]string{r.ID, r.Title, humanize.RelTime(r.CreatedAt, now, "ago", "from now")})
	}
	table.Render()
}

func writeReport(w io.Writer, rep *db.Report, asHTML bool) error {
	if !asHTML {
		_, err := io.WriteString(w, export.Text(rep))
		return err
	}
	doc, err := export.HTML(rep)
	if err != nil {
		return err
	}
	_, err = w.Write(doc)
	return err
}
