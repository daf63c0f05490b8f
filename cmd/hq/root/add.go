package root

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"habitquest/internal/engine"
	"habitquest/internal/ui"
)

func newAddCmd() *cobra.Command {
	var (
		category    string
		description string
		color       string
		freq        string
		isMetric    bool
		remindAt    string
		remindDays  string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if interactive {
				return cobra.MaximumNArgs(1)(cmd, args)
			}
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			in := engine.CreateHabitInput{
				Category:    category,
				Description: description,
				Color:       color,
				IsMetric:    isMetric,
			}
			if len(args) == 1 {
				in.Name = args[0]
			}

			if interactive {
				if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
					return errors.New("interactive mode needs a terminal")
				}
				if err := runAddForm(&in, &freq, &remindAt); err != nil {
					return err
				}
			}

			f, err := engine.ParseFrequency(freq)
			if err != nil {
				return err
			}
			in.Frequency = f

			if strings.TrimSpace(remindAt) != "" {
				days, err := engine.ParseWeekdays(remindDays)
				if err != nil {
					return err
				}
				in.Reminder = &engine.ReminderInput{Time: remindAt, Days: days}
			}

			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.CreateHabit(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n", ui.IconPlus, ui.Title.Render(strings.TrimSpace(in.Name)), ui.Muted.Render("("+res.HabitID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Category (default General)")
	cmd.Flags().StringVar(&description, "desc", "", "Description")
	cmd.Flags().StringVar(&color, "color", "", "Hex color, e.g. #22c55e")
	cmd.Flags().StringVar(&freq, "freq", "daily", "Frequency (daily|weekly|monthly)")
	cmd.Flags().BoolVar(&isMetric, "metric", false, "Track a value; a day counts at 5 or more")
	cmd.Flags().StringVar(&remindAt, "remind", "", "Reminder time HH:MM")
	cmd.Flags().StringVar(&remindDays, "days", "0,1,2,3,4,5,6", "Reminder weekdays, 0=Sunday")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the habit in a form")

	return cmd
}

func runAddForm(in *engine.CreateHabitInput, freq *string, remindAt *string) error {
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&in.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name is required")
					}
					return nil
				}),
			huh.NewInput().Title("Description").Value(&in.Description),
			huh.NewInput().Title("Category").Placeholder(engine.DefaultCategory).Value(&in.Category),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Frequency").
				Options(
					huh.NewOption("Daily", string(engine.FrequencyDaily)),
					huh.NewOption("Weekly", string(engine.FrequencyWeekly)),
					huh.NewOption("Monthly", string(engine.FrequencyMonthly)),
				).
				Value(freq),
			huh.NewConfirm().
				Title("Metric habit?").
				Description("Log a number each day; 5 or more counts.").
				Value(&in.IsMetric),
			huh.NewInput().
				Title("Reminder (HH:MM, blank for none)").
				Value(remindAt).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					_, err := engine.ParseClock(s)
					return err
				}),
		),
	).WithAccessible(false)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return errors.New("cancelled")
		}
		return fmt.Errorf("form error: %w", err)
	}
	return nil
}
