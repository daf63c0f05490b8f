package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newRemindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Reminders scheduled for today",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			due, err := svc.DueReminders(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(due) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No reminders today."))
				return nil
			}

			now := svc.Now().Format("15:04")
			fmt.Fprintln(out, ui.Heading(ui.IconBell, "Today's reminders"))
			for _, r := range due {
				state := ui.Muted.Render("upcoming")
				switch {
				case r.Done:
					state = ui.Good.Render("done")
				case r.Time <= now:
					state = ui.Warn.Render("due")
				}
				fmt.Fprintf(out, "%s %s %-24s %s\n", ui.DoneMark(r.Done), ui.Key.Render(r.Time), r.HabitName, state)
			}
			return nil
		},
	}
	return cmd
}
