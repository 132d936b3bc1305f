package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"listd/internal/apperr"
)

func newTestIssuer(t *testing.T, now func() time.Time) *Issuer {
	t.Helper()
	issuer, err := NewIssuer(Config{
		SigningKey: "access-test-key",
		RefreshKey: "refresh-test-key",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Now:        now,
	})
	require.NoError(t, err)
	return issuer
}

func TestNewIssuerRequiresKeys(t *testing.T) {
	_, err := NewIssuer(Config{SigningKey: "", RefreshKey: "r"})
	assert.Error(t, err)

	_, err = NewIssuer(Config{SigningKey: "s", RefreshKey: ""})
	assert.Error(t, err)
}

func TestIssueAndVerifyRoundTrip(t *testing.T) {
	issuer := newTestIssuer(t, nil)
	userID := uuid.New()

	pair, err := issuer.Issue(userID)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	got, err := issuer.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)

	got, err = issuer.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestTokensAreNotInterchangeable(t *testing.T) {
	issuer := newTestIssuer(t, nil)

	pair, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	// A refresh token must not pass as an access credential, and vice versa.
	_, err = issuer.VerifyAccess(pair.RefreshToken)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	_, err = issuer.VerifyRefresh(pair.AccessToken)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
}

func TestExpiredAccessToken(t *testing.T) {
	start := time.Now()
	current := start
	issuer := newTestIssuer(t, func() time.Time { return current })

	pair, err := issuer.Issue(uuid.New())
	require.NoError(t, err)

	current = start.Add(16 * time.Minute)
	_, err = issuer.VerifyAccess(pair.AccessToken)
	require.Error(t, err)
	assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))

	// The refresh token outlives the access token.
	_, err = issuer.VerifyRefresh(pair.RefreshToken)
	assert.NoError(t, err)
}

func TestVerifyGarbage(t *testing.T) {
	issuer := newTestIssuer(t, nil)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := issuer.VerifyAccess(raw)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
	}
}
