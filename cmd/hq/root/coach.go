package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"habitquest/internal/coach"
	"habitquest/internal/engine"
)

func newCoachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coach",
		Short: "AI coaching: insight, prediction, briefing, mentor line, questions",
	}
	cmd.AddCommand(
		coachSubCmd("insight", "Tactical read on your habits", runInsight),
		coachSubCmd("predict", "30-day projection", runPredict),
		coachSubCmd("briefing", "Insight and projection together", runBriefing),
		coachSubCmd("mentor", "One line of motivation", runMentor),
		newAskCmd(),
	)
	return cmd
}

type coachRun func(ctx context.Context, c *coach.Coach, st *engine.State) (string, error)

func coachSubCmd(use, short string, run coachRun) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withCoach(cmd, run)
		},
	}
}

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the coach anything about your habits",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("question is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			return withCoach(cmd, func(ctx context.Context, c *coach.Coach, st *engine.State) (string, error) {
				extra := map[string]any{
					"name":   st.Profile.Name,
					"level":  st.Level(),
					"xp":     st.Profile.XP,
					"habits": engine.Summarize(st.Habits),
				}
				return c.Ask(ctx, query, extra)
			})
		},
	}
}

func withCoach(cmd *cobra.Command, run coachRun) error {
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
	c, err := openCoach(ctx)
	if err != nil {
		return coachUnavailable(cmd, err)
	}
	md, err := run(ctx, c, st)
	if err != nil {
		return coachUnavailable(cmd, err)
	}
	fmt.Fprint(cmd.OutOrStdout(), renderMarkdown(md))
	return nil
}

func runInsight(ctx context.Context, c *coach.Coach, st *engine.State) (string, error) {
	in, err := c.Insight(ctx, engine.Summarize(st.Habits))
	if err != nil {
		return "", err
	}
	return insightMarkdown(in), nil
}

func runPredict(ctx context.Context, c *coach.Coach, st *engine.State) (string, error) {
	p, err := c.Predict(ctx, st.Profile, engine.Summarize(st.Habits))
	if err != nil {
		return "", err
	}
	return predictionMarkdown(p), nil
}

func runBriefing(ctx context.Context, c *coach.Coach, st *engine.State) (string, error) {
	b, err := c.Briefing(ctx, st.Profile, engine.Summarize(st.Habits))
	if err != nil {
		return "", err
	}
	return insightMarkdown(b.Insight) + "\n" + predictionMarkdown(b.Prediction), nil
}

func runMentor(ctx context.Context, c *coach.Coach, st *engine.State) (string, error) {
	line, err := c.Mentor(ctx, st.Profile, engine.Summarize(st.Habits))
	if err != nil {
		return "", err
	}
	return "> **" + line + "**\n", nil
}

func insightMarkdown(in *coach.Insight) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n%s\n\n", in.Title, in.Advice)
	fmt.Fprintf(&b, "*Confidence:* %.0f%%", normalizePercent(in.Confidence))
	if len(in.Tags) > 0 {
		b.WriteString("  ·  ")
		for i, t := range in.Tags {
			if i > 0 {
				b.WriteString(" ")
			}
			fmt.Fprintf(&b, "`%s`", t)
		}
	}
	b.WriteString("\n")
	return b.String()
}

func predictionMarkdown(p *coach.Prediction) string {
	var b strings.Builder
	b.WriteString("## 30-day projection\n\n")
	fmt.Fprintf(&b, "- **Projected level:** %d\n", p.ProjectedLevel)
	fmt.Fprintf(&b, "- **Success probability:** %.0f%%\n", normalizePercent(p.SuccessProbability))
	fmt.Fprintf(&b, "- **Next milestone:** %s\n\n", p.NextMilestoneEstimate)
	b.WriteString(p.Summary + "\n")
	return b.String()
}

// normalizePercent accepts either a 0-1 fraction or a 0-100 percentage.
func normalizePercent(v float64) float64 {
	if v > 0 && v <= 1 {
		return v * 100
	}
	return v
}

func renderMarkdown(md string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}
