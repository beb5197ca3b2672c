package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_MarkPasswordChanged_BackdatesStamp(t *testing.T) {
	account := &Account{}

	before := time.Now()
	account.MarkPasswordChanged()

	require.NotNil(t, account.PasswordChangedAt)
	assert.True(t, account.PasswordChangedAt.Before(before),
		"changed-at must be stamped in the past so a token issued in the same request is still accepted")
}

func TestAccount_PasswordChangedAfter(t *testing.T) {
	changedAt := time.Now()

	tests := []struct {
		name     string
		account  *Account
		issuedAt time.Time
		want     bool
	}{
		{
			name:     "never changed",
			account:  &Account{},
			issuedAt: time.Now().Add(-time.Hour),
			want:     false,
		},
		{
			name:     "token issued before change",
			account:  &Account{PasswordChangedAt: &changedAt},
			issuedAt: changedAt.Add(-time.Minute),
			want:     true,
		},
		{
			name:     "token issued after change",
			account:  &Account{PasswordChangedAt: &changedAt},
			issuedAt: changedAt.Add(time.Minute),
			want:     false,
		},
		{
			name:     "token issued at the exact change instant",
			account:  &Account{PasswordChangedAt: &changedAt},
			issuedAt: changedAt,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.account.PasswordChangedAfter(tt.issuedAt))
		})
	}
}

func TestAccount_ResetTokenLifecycle(t *testing.T) {
	account := &Account{}

	expiry := time.Now().Add(10 * time.Minute)
	account.SetResetToken("first-hash", expiry)

	require.NotNil(t, account.ResetTokenHash)
	require.NotNil(t, account.ResetTokenExpiresAt)
	assert.Equal(t, "first-hash", *account.ResetTokenHash)

	// A second issue supersedes the first.
	account.SetResetToken("second-hash", expiry.Add(time.Minute))
	assert.Equal(t, "second-hash", *account.ResetTokenHash)

	account.ClearResetToken()
	assert.Nil(t, account.ResetTokenHash)
	assert.Nil(t, account.ResetTokenExpiresAt)
}

func TestRole_IsValid(t *testing.T) {
	for _, role := range []Role{RoleUser, RoleGuide, RoleLeadGuide, RoleAdmin} {
		assert.True(t, role.IsValid(), role.String())
	}
	assert.False(t, Role("superuser").IsValid())
}

func TestRoles_Contains(t *testing.T) {
	allowed := Roles{RoleAdmin, RoleLeadGuide}

	assert.True(t, allowed.Contains(RoleAdmin))
	// No hierarchy: a role must be listed explicitly.
	assert.False(t, allowed.Contains(RoleGuide))
	assert.False(t, allowed.Contains(RoleUser))
}
