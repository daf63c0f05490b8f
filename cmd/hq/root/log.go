package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/storage"
	"habitquest/internal/ui"
)

func newLogCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "log <habit> [value]",
		Short: "Toggle a day for a habit (metric habits take a value)",
		Long: "Toggle today's (or --date's) completion. Boolean habits flip. Metric habits record the value;\n" +
			"a day counts at 5 or more and omitting the value clears the day.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("usage: hq log <habit> [value]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			var value *float64
			if len(args) == 2 {
				v, err := engine.ParseValue(args[1])
				if err != nil {
					return err
				}
				value = v
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			h, _, err := resolveHabit(ctx, svc, args[0])
			if err != nil {
				return err
			}
			res, err := svc.ToggleHabit(ctx, h.ID, date, value)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case res.XPDelta > 0:
				fmt.Fprintf(out, "%s %s %s  %s\n", ui.IconDone, ui.Title.Render(h.Name), res.Date, ui.Good.Render(fmt.Sprintf("+%d XP", res.XPDelta)))
			case res.XPDelta < 0:
				fmt.Fprintf(out, "%s %s %s  %s\n", ui.IconWarn, ui.Title.Render(h.Name), res.Date, ui.Bad.Render(fmt.Sprintf("%d XP", res.XPDelta)))
			default:
				state := "not counted"
				if res.Qualified {
					state = "counted"
				}
				fmt.Fprintf(out, "%s %s %s  %s\n", ui.IconInfo, ui.Title.Render(h.Name), res.Date, ui.Muted.Render(state))
			}
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFire, res.Streak)))
			if res.LevelUp {
				fmt.Fprintf(out, "%s %s level %d → %d\n", ui.IconTrophy, ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to log, YYYY-MM-DD (default today)")
	return cmd
}

func resolveHabit(ctx context.Context, svc *engine.Service, ref string) (*storage.Habit, *engine.State, error) {
	st, err := svc.LoadState(ctx)
	if err != nil {
		return nil, nil, err
	}
	h, err := st.Resolve(ref)
	if err != nil {
		return nil, nil, err
	}
	return h, st, nil
}
