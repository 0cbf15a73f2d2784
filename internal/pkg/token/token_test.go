package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lms-backend/internal/pkg/token"
)

const testSecret = "test-secret-at-least-32-bytes-long!!"

func newTestIssuer(ttl time.Duration) *token.Issuer {
	return token.NewIssuer(testSecret, "lms-backend", "lms-clients", ttl)
}

func TestIssueAndParse(t *testing.T) {
	issuer := newTestIssuer(time.Hour)

	signed, err := issuer.Issue(42, "alice@example.com", "Alice Doe", "Student")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := issuer.Parse(signed)
	require.NoError(t, err)

	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice Doe", claims.FullName)
	assert.Equal(t, "Student", claims.Role)
	assert.Equal(t, "42", claims.Subject)

	id, err := claims.StudentID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), id)
}

func TestParseExpiredToken(t *testing.T) {
	issuer := newTestIssuer(time.Millisecond)

	signed, err := issuer.Issue(1, "bob@example.com", "Bob", "Student")
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	claims, err := issuer.Parse(signed)
	require.ErrorIs(t, err, token.ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestParseWrongSecret(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	other := token.NewIssuer("a-completely-different-secret-value", "lms-backend", "lms-clients", time.Hour)

	signed, err := issuer.Issue(1, "bob@example.com", "Bob", "Student")
	require.NoError(t, err)

	claims, err := other.Parse(signed)
	require.ErrorIs(t, err, token.ErrTokenInvalid)
	assert.Nil(t, claims)
}

func TestParseWrongAudience(t *testing.T) {
	issuer := newTestIssuer(time.Hour)
	other := token.NewIssuer(testSecret, "lms-backend", "another-audience", time.Hour)

	signed, err := issuer.Issue(1, "bob@example.com", "Bob", "Student")
	require.NoError(t, err)

	_, err = other.Parse(signed)
	require.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestParseGarbage(t *testing.T) {
	issuer := newTestIssuer(time.Hour)

	_, err := issuer.Parse("not.a.token")
	require.ErrorIs(t, err, token.ErrTokenInvalid)

	_, err = issuer.Parse("")
	require.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestStudentIDRejectsNonNumericSubject(t *testing.T) {
	claims := &token.Claims{}
	claims.Subject = "not-a-number"

	_, err := claims.StudentID()
	require.ErrorIs(t, err, token.ErrTokenInvalid)
}

func TestZeroTTLFallsBackToDefault(t *testing.T) {
	issuer := token.NewIssuer(testSecret, "lms-backend", "lms-clients", 0)

	signed, err := issuer.Issue(7, "carol@example.com", "Carol", "Admin")
	require.NoError(t, err)

	claims, err := issuer.Parse(signed)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(token.DefaultTTL), claims.ExpiresAt.Time, 10*time.Second)
}
