package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show profile, level progress and the mastery track",
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
			p := st.Profile
			level := st.Level()
			into, pct := engine.LevelProgress(p.XP)
			nextReq := engine.XPRequiredForLevel(level + 1)
			today := svc.Today()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Profile"))
			fmt.Fprintln(out, ui.LabelValue("Name", p.Name))
			if p.Provider != "" {
				fmt.Fprintln(out, ui.LabelValue("Signed in", fmt.Sprintf("%s (%s)", p.Provider, p.Email)))
			}
			fmt.Fprintln(out, ui.LabelValue("Level", fmt.Sprintf("%d %s", level, ui.Gold.Render(engine.Rank(level)))))
			fmt.Fprintln(out, ui.LabelValue("XP", fmt.Sprintf("%d (next at %d, %d to go)", p.XP, nextReq, nextReq-p.XP)))
			fmt.Fprintf(out, "%s %s\n", ui.ProgressBar(into, engine.XPPerLevel, 30), ui.Muted.Render(fmt.Sprintf("%.0f%%", pct)))
			fmt.Fprintln(out, ui.LabelValue("Streak freezes", p.StreakFreezes))
			fmt.Fprintln(out, ui.LabelValue("Today", fmt.Sprintf("%s %s", today, ui.Percent(int(engine.DailyConsistency(st.Habits, today)*100+0.5)))))
			fmt.Fprintln(out, "")

			best := 0
			for _, h := range st.Habits {
				best = max(best, engine.LongestStreak(h, today))
			}
			fmt.Fprintln(out, ui.LabelValue("Habits", len(st.Habits)))
			fmt.Fprintln(out, ui.LabelValue("Longest streak", fmt.Sprintf("%s %d", ui.IconFire, best)))
			fmt.Fprintln(out, "")

			mc := engine.NewMasteryChecker(p, st.Habits)
			fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s Mastery track (%d/%d)", ui.IconTrophy, mc.CountEarned(), len(mc.GetMilestones()))))
			for _, m := range mc.GetMilestones() {
				mark := ui.Muted.Render(ui.IconLock)
				if m.Earned {
					mark = m.Icon
				}
				fmt.Fprintf(out, "- %s %s %s %s\n", mark, ui.Key.Render(m.Name), ui.ProgressBar(int(m.Progress), 100, 10), ui.Muted.Render(m.Description))
			}
			return nil
		},
	}

	return cmd
}
