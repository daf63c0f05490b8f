package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitquest/internal/engine"
)

func fastAuth() *Authenticator {
	fixed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return New(WithLatency(0), WithClock(func() time.Time { return fixed }))
}

func TestParseProvider(t *testing.T) {
	p, err := ParseProvider(" Google ")
	require.NoError(t, err)
	assert.Equal(t, ProviderGoogle, p)

	_, err = ParseProvider("myspace")
	var verr engine.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestHandshakeProfiles(t *testing.T) {
	a := fastAuth()
	ctx := context.Background()

	g, err := a.Handshake(ctx, ProviderGoogle, "", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(g.ID, "google_"))
	assert.Equal(t, "Void Walker", g.Name)
	assert.Equal(t, 1250, g.XP)
	assert.Equal(t, 3, g.Level)
	assert.Equal(t, 2, g.StreakFreezes)

	ap, err := a.Handshake(ctx, ProviderApple, "", "")
	require.NoError(t, err)
	assert.Equal(t, 2, ap.Level)

	e, err := a.Handshake(ctx, ProviderEmail, "neo@matrix.io", "")
	require.NoError(t, err)
	assert.Equal(t, "neo", e.Name)
	assert.Equal(t, "neo@matrix.io", e.Email)
	assert.Equal(t, 0, e.XP)
	assert.Equal(t, 1, e.Level)

	ph, err := a.Handshake(ctx, ProviderPhone, "5550100", "123456")
	require.NoError(t, err)
	assert.Equal(t, "Mobile Operative", ph.Name)
	assert.Equal(t, "5550100@mobile.habitquest.ai", ph.Email)
	assert.Equal(t, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC), ph.JoinedAt)
}

func TestHandshakeValidation(t *testing.T) {
	a := fastAuth()
	ctx := context.Background()
	var verr engine.ValidationError

	_, err := a.Handshake(ctx, ProviderEmail, "not-an-email", "")
	assert.ErrorAs(t, err, &verr)

	_, err = a.Handshake(ctx, ProviderPhone, "5550100", "12ab56")
	assert.ErrorAs(t, err, &verr)

	_, err = a.Handshake(ctx, ProviderPhone, "", "123456")
	assert.ErrorAs(t, err, &verr)
}

func TestHandshakeCancelled(t *testing.T) {
	a := New(WithLatency(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Handshake(ctx, ProviderGoogle, "", "")
	assert.True(t, errors.Is(err, context.Canceled))
}
