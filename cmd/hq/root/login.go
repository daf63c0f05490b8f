package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"habitquest/internal/auth"
	"habitquest/internal/ui"
)

func newLoginCmd() *cobra.Command {
	var (
		otp     string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "login <google|apple|email|phone> [identity]",
		Short: "Sign in (simulated) and adopt the provider profile",
		Long: "Simulated sign-in. email takes the address as identity; phone takes the number and --otp.\n" +
			"An existing signed-in profile is kept unless --replace is given.",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 1 || len(args) > 2 {
				return errors.New("usage: hq login <provider> [identity]")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			provider, err := auth.ParseProvider(args[0])
			if err != nil {
				return err
			}
			identity := ""
			if len(args) == 2 {
				identity = args[1]
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("Handshaking with %s…", provider)))

			p, err := auth.New().Handshake(ctx, provider, identity, otp)
			if err != nil {
				return err
			}

			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			stored, changed, err := svc.SignIn(ctx, *p, replace)
			if err != nil {
				return err
			}
			if !changed {
				fmt.Fprintf(out, "%s Already signed in as %s via %s (use --replace to switch)\n", ui.IconInfo, ui.Title.Render(stored.Name), stored.Provider)
				return nil
			}
			fmt.Fprintf(out, "%s Welcome, %s\n", ui.IconSparkle, ui.Title.Render(stored.Name))
			fmt.Fprintln(out, ui.LabelValue("Level", stored.Level))
			fmt.Fprintln(out, ui.LabelValue("XP", stored.XP))
			return nil
		},
	}

	cmd.Flags().StringVar(&otp, "otp", "", "6-digit code for phone sign-in")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing signed-in profile")
	return cmd
}
