package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List habits with streaks and today's mark",
		RunE: func(cmd *cobra.Command, args []string) error {
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
			out := cmd.OutOrStdout()
			if len(st.Habits) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No habits yet. Try: hq add \"Read 20 pages\""))
				return nil
			}

			today := svc.Today()
			fmt.Fprintln(out, ui.Heading(ui.IconQuest, fmt.Sprintf("Habits (%s)", today)))
			for _, h := range st.Habits {
				done := engine.QualifiesOn(h, today)
				kind := ""
				if h.IsMetric {
					kind = ui.Muted.Render(" [metric]")
				}
				fmt.Fprintf(out, "%s %s %-24s %s %-3d %s%s\n",
					ui.DoneMark(done),
					ui.Swatch(h.Color),
					h.Name,
					ui.IconFire, h.Streak,
					ui.Muted.Render(h.Category+" · "+h.ID[:min(8, len(h.ID))]),
					kind)
			}
			return nil
		},
	}

	return cmd
}
