package token_test

import (
	"testing"
	"time"

	"relaychat/backend/internal/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRevocations is an in-memory RevocationList.
type fakeRevocations struct {
	revoked map[string]time.Duration
}

func newFakeRevocations() *fakeRevocations {
	return &fakeRevocations{revoked: make(map[string]time.Duration)}
}

func (f *fakeRevocations) RevokeToken(tok string, ttl time.Duration) error {
	f.revoked[tok] = ttl
	return nil
}

func (f *fakeRevocations) IsTokenRevoked(tok string) (bool, error) {
	_, ok := f.revoked[tok]
	return ok, nil
}

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour, nil)

	tok, err := svc.Issue("user_1", "alice")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	ident, err := svc.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user_1", ident.UserID)
	assert.Equal(t, "alice", ident.Username)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := token.NewService("secret-a", time.Hour, nil)
	verifier := token.NewService("secret-b", time.Hour, nil)

	tok, err := issuer.Issue("user_1", "alice")
	require.NoError(t, err)

	_, err = verifier.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc := token.NewService("test-secret", -time.Minute, nil)

	tok, err := svc.Issue("user_1", "alice")
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	svc := token.NewService("test-secret", time.Hour, nil)
	_, err := svc.Verify("not.a.token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}

func TestRevokeInvalidatesLiveToken(t *testing.T) {
	revocations := newFakeRevocations()
	svc := token.NewService("test-secret", time.Hour, revocations)

	tok, err := svc.Issue("user_1", "alice")
	require.NoError(t, err)

	_, err = svc.Verify(tok)
	require.NoError(t, err, "token should verify before revocation")

	require.NoError(t, svc.Revoke(tok))

	_, err = svc.Verify(tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	// The revocation entry only needs to outlive the token itself.
	ttl := revocations.revoked[tok]
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Hour)
}

func TestRevokeIgnoresInvalidToken(t *testing.T) {
	revocations := newFakeRevocations()
	svc := token.NewService("test-secret", time.Hour, revocations)

	assert.NoError(t, svc.Revoke("garbage"))
	assert.Empty(t, revocations.revoked)
}
