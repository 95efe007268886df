package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"NewsScanner/internal/app"
)

const dayLayout = "2006-01-02"

func newRunCmd(c *cli) *cobra.Command {
	var today string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the pipeline once",
		Long: `Fetches the listing, filters it to the date window ending on --today
(default: the current day in window.timezone) and rewrites output.path.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref, err := parseToday(today, time.Now(), c.cfg.Window.Location())
			if err != nil {
				return err
			}

			return c.withApp(cmd.Context(), func(a *app.Application) error {
				summary, err := a.Run(cmd.Context(), ref)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "run %s: %d written, %d tagged, %d skipped, %d rejected\n",
					summary.RunID, summary.Written, summary.Tagged, summary.Skipped, summary.Rejected)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "reference day as YYYY-MM-DD")

	return cmd
}

// parseToday resolves the --today flag in loc, falling back to now.
func parseToday(value string, now time.Time, loc *time.Location) (time.Time, error) {
	if value == "" {
		return now.In(loc), nil
	}
	day, err := time.ParseInLocation(dayLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --today %q: want YYYY-MM-DD", value)
	}
	return day, nil
}
