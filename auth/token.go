package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	RolePlayer   = "player"
	RoleOperator = "operator"
)

// CustomClaims defines the structure of the data stored inside the JWT.
type CustomClaims struct {
	PlayerID string   `json:"player_id"`
	Roles    []string `json:"roles"`
	jwt.RegisteredClaims
}

// TokenManager signs and checks the tokens handed out to connected players.
type TokenManager struct {
	secret   []byte
	duration time.Duration
}

func NewTokenManager(secret string, duration time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), duration: duration}
}

// GenerateToken creates a signed JWT for a specific player.
func (m *TokenManager) GenerateToken(playerID string, roles []string) (string, error) {
	if err := ValidateClaims(ClaimsRequest{PlayerID: playerID, Roles: roles}); err != nil {
		return "", err
	}
	now := time.Now()
	claims := &CustomClaims{
		PlayerID: playerID,
		Roles:    roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "ludo-lab",
		},
	}

	// HS256 (HMAC with SHA256)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and validates the signature and expiration of a JWT string.
func (m *TokenManager) ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}
