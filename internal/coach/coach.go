// Package coach asks a language model for insights, predictions and habit
// suggestions. Every request is throttled and retried on rate limits.
package coach

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"habitquest/internal/config"
	"habitquest/internal/engine"
	"habitquest/internal/storage"
)

// MentorFallback is shown when the model answers with nothing.
const MentorFallback = "SYSTEM OPTIMAL. CONTINUE."

type Options struct {
	Retry             RetryConfig
	RequestsPerMinute int // 0 disables throttling
	Logger            *zap.Logger
}

type Coach struct {
	gen     Generator
	retry   RetryConfig
	limiter *rate.Limiter
	log     *zap.Logger
}

func New(gen Generator, opts Options) *Coach {
	c := &Coach{
		gen:   gen,
		retry: opts.Retry,
		log:   opts.Logger,
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if opts.RequestsPerMinute > 0 {
		c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}
	return c
}

// NewFromConfig picks the provider named in cfg. A missing key yields an
// error wrapping ErrUnavailable.
func NewFromConfig(ctx context.Context, cfg config.CoachConfig, log *zap.Logger) (*Coach, error) {
	var (
		gen Generator
		err error
	)
	switch cfg.Provider {
	case config.ProviderAnthropic:
		gen, err = NewAnthropicGenerator(cfg.APIKey, cfg.Model)
	case config.ProviderGemini, "":
		gen, err = NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown coach provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return New(gen, Options{
		Retry: RetryConfig{
			MaxRetries:        cfg.MaxRetries,
			InitialBackoff:    cfg.InitialBackoff,
			MaxBackoff:        cfg.MaxBackoff,
			BackoffMultiplier: 2.0,
		},
		RequestsPerMinute: cfg.RequestsPerMinute,
		Logger:            log,
	}), nil
}

func (c *Coach) Provider() string { return c.gen.Name() }

func (c *Coach) generate(ctx context.Context, op string, req Request) (string, error) {
	var text string
	start := time.Now()
	err := retryWithBackoff(ctx, c.retry, c.log, op, func(ctx context.Context) error {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return err
			}
		}
		out, err := c.gen.Generate(ctx, req)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			return "", err
		}
		return "", fmt.Errorf("%w: %s: %w", ErrUnavailable, op, err)
	}
	c.log.Debug("coach request done",
		zap.String("op", op),
		zap.String("provider", c.gen.Name()),
		zap.Duration("took", time.Since(start)))
	return text, nil
}

// Insight returns a short tactical read on the habit list.
func (c *Coach) Insight(ctx context.Context, summaries []engine.HabitSummary) (*Insight, error) {
	text, err := c.generate(ctx, "insight", Request{Prompt: insightPrompt(summaries), Schema: insightSchema})
	if err != nil {
		return nil, err
	}
	out, err := decodeJSON[Insight](text)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Predict projects the profile 30 days ahead.
func (c *Coach) Predict(ctx context.Context, p storage.Profile, summaries []engine.HabitSummary) (*Prediction, error) {
	text, err := c.generate(ctx, "predict", Request{Prompt: predictionPrompt(p, summaries), Schema: predictionSchema})
	if err != nil {
		return nil, err
	}
	out, err := decodeJSON[Prediction](text)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

type Briefing struct {
	Insight    *Insight
	Prediction *Prediction
}

// Briefing fetches the insight and the prediction concurrently.
func (c *Coach) Briefing(ctx context.Context, p storage.Profile, summaries []engine.HabitSummary) (*Briefing, error) {
	var b Briefing
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		in, err := c.Insight(gctx, summaries)
		b.Insight = in
		return err
	})
	g.Go(func() error {
		pr, err := c.Predict(gctx, p, summaries)
		b.Prediction = pr
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &b, nil
}

// Mentor returns one motivating line of at most 15 words.
func (c *Coach) Mentor(ctx context.Context, p storage.Profile, summaries []engine.HabitSummary) (string, error) {
	temp := float32(0.8)
	text, err := c.generate(ctx, "mentor", Request{Prompt: mentorPrompt(p, summaries), Temperature: &temp})
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(strings.NewReplacer(`"`, "", "'", "").Replace(text))
	if text == "" {
		return MentorFallback, nil
	}
	return text, nil
}

// SuggestHabit turns a free-text goal into a habit proposal. The name keeps
// the goal's own wording.
func (c *Coach) SuggestHabit(ctx context.Context, goal string) (*Suggestion, error) {
	goal = strings.TrimSpace(goal)
	if goal == "" {
		return nil, engine.ValidationError{Field: "goal", Reason: "is required"}
	}
	text, err := c.generate(ctx, "suggest", Request{Prompt: suggestionPrompt(goal), Schema: suggestionSchema})
	if err != nil {
		return nil, err
	}
	out, err := decodeJSON[Suggestion](text)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(out.Name) == "" {
		out.Name = goal
	}
	return &out, nil
}

// Ask answers a free-form question with the caller's context attached.
func (c *Coach) Ask(ctx context.Context, query string, extra any) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", engine.ValidationError{Field: "query", Reason: "is required"}
	}
	text, err := c.generate(ctx, "ask", Request{Prompt: askPrompt(query, extra)})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
