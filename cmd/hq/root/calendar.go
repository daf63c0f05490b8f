package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newCalendarCmd() *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Month grid shaded by daily consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			var first time.Time
			if month == "" {
				t, _ := engine.ParseDay(svc.Today())
				first = time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
			} else {
				t, err := time.Parse("2006-01", month)
				if err != nil {
					return engine.ValidationError{Field: "month", Reason: "want YYYY-MM"}
				}
				first = t
			}

			st, err := svc.LoadState(ctx)
			if err != nil {
				return err
			}
			days := engine.MonthIntensity(st.Habits, first.Year(), first.Month())

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, first.Format("January 2006")))
			fmt.Fprintln(out, ui.Muted.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))

			var row strings.Builder
			row.WriteString(strings.Repeat("    ", int(first.Weekday())))
			for i, d := range days {
				row.WriteString(ui.IntensityCell(i+1, d.Ratio))
				row.WriteString(" ")
				if wd, _ := engine.Weekday(d.Date); wd == time.Saturday {
					fmt.Fprintln(out, row.String())
					row.Reset()
				}
			}
			if row.Len() > 0 {
				fmt.Fprintln(out, row.String())
			}

			fmt.Fprintln(out, "")
			fmt.Fprintf(out, "less %s %s %s %s %s more\n",
				ui.IntensityCell(0, 0), ui.IntensityCell(0, 0.25), ui.IntensityCell(0, 0.5), ui.IntensityCell(0, 0.75), ui.IntensityCell(0, 1))
			return nil
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "Month to show, YYYY-MM (default current)")
	return cmd
}
