package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	req := require.New(t)
	tokens := NewTokenManager("a_test_secret_long_enough_2026", time.Hour)
	playerID := uuid.NewString()

	token, err := tokens.GenerateToken(playerID, []string{RolePlayer})
	req.NoError(err)

	claims, err := tokens.ValidateToken(token)
	req.NoError(err)
	req.Equal(playerID, claims.PlayerID)
	req.Equal([]string{RolePlayer}, claims.Roles)
	req.Equal("ludo-lab", claims.Issuer)
}

func TestValidateToken_Rejections(t *testing.T) {
	req := require.New(t)
	tokens := NewTokenManager("a_test_secret_long_enough_2026", time.Hour)
	playerID := uuid.NewString()

	t.Run("expired token", func(t *testing.T) {
		expired := NewTokenManager("a_test_secret_long_enough_2026", -time.Minute)
		token, err := expired.GenerateToken(playerID, []string{RolePlayer})
		req.NoError(err)
		_, err = tokens.ValidateToken(token)
		req.Error(err)
	})

	t.Run("foreign secret", func(t *testing.T) {
		other := NewTokenManager("another_secret_entirely_2026", time.Hour)
		token, err := other.GenerateToken(playerID, []string{RolePlayer})
		req.NoError(err)
		_, err = tokens.ValidateToken(token)
		req.Error(err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := tokens.ValidateToken("not-a-token")
		req.Error(err)
	})
}

func TestClaimsValidation(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		claims  ClaimsRequest
		wantErr bool
	}{
		{"Player", ClaimsRequest{uuid.NewString(), []string{RolePlayer}}, false},
		{"Operator", ClaimsRequest{uuid.NewString(), []string{RolePlayer, RoleOperator}}, false},
		{"Missing player id", ClaimsRequest{"", []string{RolePlayer}}, true},
		{"Player id not a uuid", ClaimsRequest{"ann", []string{RolePlayer}}, true},
		{"No role", ClaimsRequest{uuid.NewString(), nil}, true},
		{"Unknown role", ClaimsRequest{uuid.NewString(), []string{"admin"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateClaims(tt.claims)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}
