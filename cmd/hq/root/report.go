package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

var reportTabs = []string{"overview", "consistency", "streak", "potential"}

func newReportCmd() *cobra.Command {
	var (
		days   int
		offset int
		tab    string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Progress report: consistency, streak and potential over a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return engine.ValidationError{Field: "days", Reason: "must be positive"}
			}
			if !validTab(tab) {
				return engine.ValidationError{Field: "tab", Reason: fmt.Sprintf("want one of %v", reportTabs)}
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			st, err := svc.LoadState(ctx)
			if err != nil {
				return err
			}
			end := engine.WindowEnd(svc.Today(), offset)
			r := engine.BuildReport(st.Habits, end, days)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconChart, fmt.Sprintf("Report %s → %s", r.Start, r.End)))

			consistency := make([]float64, len(r.Points))
			streak := make([]float64, len(r.Points))
			potential := make([]float64, len(r.Points))
			maxStreak := 1.0
			for i, p := range r.Points {
				consistency[i] = float64(p.Consistency)
				streak[i] = p.Streak
				potential[i] = float64(p.Potential)
				maxStreak = max(maxStreak, p.Streak)
			}

			if tab == "overview" || tab == "consistency" {
				fmt.Fprintf(out, "%s %s\n", ui.Key.Render(fmt.Sprintf("%-12s", "Consistency")), ui.Sparkline(consistency, 100))
			}
			if tab == "overview" || tab == "streak" {
				fmt.Fprintf(out, "%s %s\n", ui.Key.Render(fmt.Sprintf("%-12s", "Streak")), ui.Sparkline(streak, maxStreak))
			}
			if tab == "overview" || tab == "potential" {
				fmt.Fprintf(out, "%s %s\n", ui.Key.Render(fmt.Sprintf("%-12s", "Potential")), ui.Sparkline(potential, 100))
			}

			if tab != "overview" {
				fmt.Fprintln(out, "")
				for _, p := range r.Points {
					var v string
					switch tab {
					case "consistency":
						v = ui.Percent(p.Consistency)
					case "streak":
						v = fmt.Sprintf("%.1f", p.Streak)
					case "potential":
						v = ui.Percent(p.Potential)
					}
					fmt.Fprintf(out, "%s  %s\n", ui.Muted.Render(p.Date), v)
				}
			}

			if len(r.Points) > 0 {
				last := r.Points[len(r.Points)-1]
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.LabelValue("Last day", fmt.Sprintf("consistency %d%%, avg streak %.1f, potential %d%%", last.Consistency, last.Streak, last.Potential)))
			}

			if len(r.Rates) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("Completion rate"))
				for _, hr := range r.Rates {
					fmt.Fprintf(out, "- %-24s %s\n", hr.Name, ui.Percent(int(hr.Rate+0.5)))
				}
			}
			if r.Weakest != nil {
				fmt.Fprintf(out, "\n%s Weakest link: %s at %.0f%%\n", ui.IconWarn, ui.Warn.Render(r.Weakest.Name), r.Weakest.Rate)
			} else if len(r.Rates) > 0 {
				fmt.Fprintf(out, "\n%s Every habit at %.0f%% or better.\n", ui.IconDone, engine.WeakLinkThreshold)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", engine.DefaultWindowDays, "Window length in days")
	cmd.Flags().IntVar(&offset, "offset", 0, "Shift the window back by this many days")
	cmd.Flags().StringVar(&tab, "tab", "overview", "overview|consistency|streak|potential")
	return cmd
}

func validTab(tab string) bool {
	for _, t := range reportTabs {
		if t == tab {
			return true
		}
	}
	return false
}
