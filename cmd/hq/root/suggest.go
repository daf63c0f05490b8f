package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"habitquest/internal/coach"
	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newSuggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest <goal>",
		Short: "Ask the coach for a habit and add it (+25 XP)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("goal is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			c, err := openCoach(ctx)
			if err != nil {
				return coachUnavailable(cmd, err)
			}
			s, err := c.SuggestHabit(ctx, strings.Join(args, " "))
			if err != nil {
				return coachUnavailable(cmd, err)
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CreateSuggestedHabit(ctx, suggestionInput(s))
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s Added %s %s\n", ui.IconRobot, ui.Title.Render(s.Name), ui.Muted.Render("("+res.HabitID+")"))
			if s.Description != "" {
				fmt.Fprintln(out, ui.Muted.Render("  "+s.Description))
			}
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("+%d XP", res.XPAwarded)))
			if res.LevelAfter > res.LevelBefore {
				fmt.Fprintf(out, "%s %s level %d → %d\n", ui.IconTrophy, ui.BadgeLevelUp, res.LevelBefore, res.LevelAfter)
			}
			return nil
		},
	}
	return cmd
}

// suggestionInput maps a coach proposal onto a new habit. A color the model
// got wrong falls back to the default rather than failing the command.
func suggestionInput(s *coach.Suggestion) engine.CreateHabitInput {
	color, err := engine.ParseColor(s.Color)
	if err != nil {
		color = engine.DefaultColor
	}
	return engine.CreateHabitInput{
		Name:        s.Name,
		Description: s.Description,
		Category:    s.Category,
		Color:       color,
		Frequency:   engine.FrequencyDaily,
	}
}

// coachUnavailable reports a coach failure without failing the command.
func coachUnavailable(cmd *cobra.Command, err error) error {
	if !errors.Is(err, coach.ErrUnavailable) {
		return err
	}
	logger.Debug("coach unavailable", zap.Error(err))
	fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn.Render(ui.IconWarn+" "+err.Error()))
	return nil
}
