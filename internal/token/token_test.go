package token

import (
	"testing"
	"time"

	"github.com/educonnect/backend/internal/model"
	"github.com/educonnect/backend/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("testsecret", 2*time.Hour)

	signed, expiresAt, err := m.Issue("UID100", model.RoleStudent)
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "UID100", claims.Subject)
	assert.Equal(t, model.RoleStudent, claims.Role)
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewManager("testsecret", -time.Minute)

	signed, _, err := m.Issue("UID100", model.RoleStudent)
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestVerifyWrongSecret(t *testing.T) {
	m := NewManager("testsecret", time.Hour)
	other := NewManager("othersecret", time.Hour)

	signed, _, err := m.Issue("ADM100", model.RoleAdmin)
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}

func TestVerifyGarbage(t *testing.T) {
	m := NewManager("testsecret", time.Hour)

	_, err := m.Verify("not-a-token")
	assert.ErrorIs(t, err, apperror.ErrInvalidToken)
}
