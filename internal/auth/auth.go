// Package auth simulates provider sign-in. Nothing leaves the machine: each
// handshake waits a little and returns a canned profile.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"habitquest/internal/engine"
	"habitquest/internal/storage"
)

type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderApple  Provider = "apple"
	ProviderEmail  Provider = "email"
	ProviderPhone  Provider = "phone"
)

var providers = []Provider{ProviderGoogle, ProviderApple, ProviderEmail, ProviderPhone}

func ParseProvider(s string) (Provider, error) {
	p := Provider(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range providers {
		if p == known {
			return p, nil
		}
	}
	return "", engine.ValidationError{Field: "provider", Reason: fmt.Sprintf("unknown %q (want google, apple, email or phone)", s)}
}

type Authenticator struct {
	latency map[Provider]time.Duration
	newID   func() string
	now     func() time.Time
}

type Option func(*Authenticator)

// WithLatency replaces the simulated round trip for every provider.
func WithLatency(d time.Duration) Option {
	return func(a *Authenticator) {
		for _, p := range providers {
			a.latency[p] = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *Authenticator) { a.now = now }
}

func New(opts ...Option) *Authenticator {
	a := &Authenticator{
		latency: map[Provider]time.Duration{
			ProviderGoogle: 2500 * time.Millisecond,
			ProviderApple:  2500 * time.Millisecond,
			ProviderEmail:  1500 * time.Millisecond,
			ProviderPhone:  2000 * time.Millisecond,
		},
		newID: func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:9] },
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Handshake signs in with provider. identity is the email address for email
// and the phone number for phone; otp is only read for phone.
func (a *Authenticator) Handshake(ctx context.Context, provider Provider, identity, otp string) (*storage.Profile, error) {
	identity = strings.TrimSpace(identity)
	switch provider {
	case ProviderEmail:
		if !strings.Contains(identity, "@") {
			return nil, engine.ValidationError{Field: "email", Reason: "must contain @"}
		}
	case ProviderPhone:
		if identity == "" {
			return nil, engine.ValidationError{Field: "phone", Reason: "is required"}
		}
		if !validOTP(otp) {
			return nil, engine.ValidationError{Field: "otp", Reason: "want 6 digits"}
		}
	case ProviderGoogle, ProviderApple:
	default:
		return nil, engine.ValidationError{Field: "provider", Reason: string(provider)}
	}

	if err := a.wait(ctx, a.latency[provider]); err != nil {
		return nil, err
	}

	p := &storage.Profile{
		Provider:      string(provider),
		JoinedAt:      a.now().UTC(),
		StreakFreezes: 1,
	}
	switch provider {
	case ProviderGoogle:
		p.ID = "google_" + a.newID()
		p.Name = "Void Walker"
		p.Email = "user@habitquest.ai"
		p.XP = 1250
		p.StreakFreezes = 2
	case ProviderApple:
		p.ID = "apple_" + a.newID()
		p.Name = "Apple User"
		p.Email = "user@privaterelay.appleid.com"
		p.XP = 500
	case ProviderEmail:
		p.ID = "std_" + a.newID()
		p.Name = identity[:strings.Index(identity, "@")]
		p.Email = identity
	case ProviderPhone:
		p.ID = "phone_" + a.newID()
		p.Name = "Mobile Operative"
		p.Email = identity + "@mobile.habitquest.ai"
		p.XP = 100
	}
	p.Level = engine.LevelForXP(p.XP)
	return p, nil
}

func (a *Authenticator) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("handshake: %w", ctx.Err())
	}
}

func validOTP(otp string) bool {
	if len(otp) != 6 {
		return false
	}
	for _, r := range otp {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
