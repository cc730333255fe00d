package auth

import (
	"github.com/stretchr/testify/require"
	"room-lab/errors"
	"strings"
	"testing"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "MonMotDePasseTr0pSûr!"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))
	req.True(IsHashed(hash))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("MauvaisMDP", hash)
	req.NoError(err)
	req.False(match)
}

func TestComparePassword_InvalidFormat(t *testing.T) {
	req := require.New(t)

	_, err := ComparePassword("secret", "not-a-hash")
	req.Error(err)
}

func TestVerifyRoomPassword(t *testing.T) {
	req := require.New(t)
	hash, err := HashPassword("secret")
	req.NoError(err)

	tests := []struct {
		name      string
		stored    string
		presented string
		master    string
		want      bool
	}{
		{"No password set", "", "", "", true},
		{"Hashed match", hash, "secret", "", true},
		{"Hashed mismatch", hash, "wrong", "", false},
		{"Missing password", hash, "", "", false},
		{"Legacy plaintext match", "plain", "plain", "", true},
		{"Legacy plaintext mismatch", "plain", "Plain", "", false},
		{"Master overrides", hash, "corpseunlock", "corpseunlock", true},
		{"Empty master never matches", hash, "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, VerifyRoomPassword(tt.stored, tt.presented, tt.master))
		})
	}
}

func TestMatchesMaster(t *testing.T) {
	req := require.New(t)

	req.True(MatchesMaster("corpseunlock", "corpseunlock"))
	req.False(MatchesMaster("corpseunlock", ""))
	req.False(MatchesMaster("", ""))
	req.False(MatchesMaster("corpse", "corpseunlock"))
}

func TestValidateRoomPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"Empty means no password", "", false},
		{"Valid password", "s3cret", false},
		{"Single character", "a", false},
		{"Three characters", "abc", false},
		{"Longest accepted", strings.Repeat("a", 72), false},
		{"Too long", strings.Repeat("a", 73), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoomPassword(tt.password)
			if tt.wantErr {
				require.ErrorIs(t, err, errors.ErrValidation)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
