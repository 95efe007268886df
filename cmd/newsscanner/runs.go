package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"NewsScanner/internal/app"
	"NewsScanner/internal/infrastructure/csvout"
)

var errNoArchive = errors.New("archive.dsn is not configured")

func newRunsCmd(c *cli) *cobra.Command {
	var limit uint64

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withApp(cmd.Context(), func(a *app.Application) error {
				archive := a.Archive()
				if archive == nil {
					return errNoArchive
				}
				runs, err := archive.Runs(cmd.Context(), limit)
				if err != nil {
					return err
				}

				rows := make([][]string, 0, len(runs))
				for _, r := range runs {
					rows = append(rows, []string{r.RunID, r.Day, strconv.Itoa(r.Records)})
				}
				return renderTable(cmd.OutOrStdout(), []string{"RUN ID", "DAY", "RECORDS"}, rows)
			})
		},
	}
	cmd.Flags().Uint64Var(&limit, "limit", 20, "maximum number of runs to list")

	return cmd
}

func newExportCmd(c *cli) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export RUN_ID",
		Short: "Write an archived run as CSV",
		Long:  `Writes the records of an archived run in the output file format to --out, or stdout when --out is empty.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd.Context(), func(a *app.Application) error {
				archive := a.Archive()
				if archive == nil {
					return errNoArchive
				}
				records, err := archive.LoadRun(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if len(records) == 0 {
					return fmt.Errorf("run %s not found", args[0])
				}
				if out == "" {
					return csvout.WriteRecords(cmd.OutOrStdout(), records)
				}
				return csvout.NewWriter().Write(records, out)
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "destination file")

	return cmd
}

// renderTable prints left-aligned borderless columns.
func renderTable(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{AutoWrap: tw.WrapNone},
				Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			},
			Header: tw.CellConfig{
				Alignment: tw.CellAlignment{Global: tw.AlignLeft},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{ShowHeader: tw.Off},
			},
		}),
	)
	table.Header(header)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("render runs: %w", err)
	}
	return table.Render()
}
