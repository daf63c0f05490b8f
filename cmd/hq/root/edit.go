package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"habitquest/internal/ui"
)

func newRenameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename <habit> <new name>",
		Short: "Rename a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("habit and new name are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
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
			name := strings.Join(args[1:], " ")
			if err := svc.RenameHabit(ctx, h.ID, name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s → %s\n", ui.IconSparkle, h.Name, ui.Title.Render(strings.TrimSpace(name)))
			return nil
		},
	}
	return cmd
}

func newDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete <habit>",
		Aliases: []string{"rm"},
		Short:   "Delete a habit and its history (XP is kept)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("habit is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
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
			if err := svc.DeleteHabit(ctx, h.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Deleted %s\n", ui.IconWarn, h.Name)
			return nil
		},
	}
	return cmd
}
