package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token audiences keep the anonymous player identity and the parent gate
// from being swapped for each other.
const (
	audiencePlayer = "player"
	audienceParent = "parent"
)

// TokenIssuer mints and validates the signed session cookies. There are no
// accounts: a player token is just a stable random identity for routing
// game state, and a parent token is proof of a recent PIN entry.
type TokenIssuer struct {
	secret    []byte
	playerTTL time.Duration
	parentTTL time.Duration
}

// NewTokenIssuer creates a token issuer signing with HMAC-SHA256
func NewTokenIssuer(secret string, playerTTL, parentTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		secret:    []byte(secret),
		playerTTL: playerTTL,
		parentTTL: parentTTL,
	}
}

// IssuePlayerToken creates a fresh player identity and its signed token
func (i *TokenIssuer) IssuePlayerToken() (playerID, token string, err error) {
	playerID = uuid.New().String()
	token, err = i.sign(playerID, audiencePlayer, i.playerTTL)
	return playerID, token, err
}

// ValidatePlayerToken returns the player ID carried by a valid player token
func (i *TokenIssuer) ValidatePlayerToken(token string) (string, error) {
	return i.validate(token, audiencePlayer)
}

// IssueParentToken creates a signed token proving the parent gate was passed
func (i *TokenIssuer) IssueParentToken() (string, error) {
	return i.sign(uuid.New().String(), audienceParent, i.parentTTL)
}

// ValidateParentToken reports whether the parent token is valid
func (i *TokenIssuer) ValidateParentToken(token string) error {
	_, err := i.validate(token, audienceParent)
	return err
}

// PlayerTTL returns how long player tokens stay valid
func (i *TokenIssuer) PlayerTTL() time.Duration {
	return i.playerTTL
}

// ParentTTL returns how long parent tokens stay valid
func (i *TokenIssuer) ParentTTL() time.Duration {
	return i.parentTTL
}

func (i *TokenIssuer) sign(subject, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Audience:  jwt.ClaimStrings{audience},
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func (i *TokenIssuer) validate(tokenString, audience string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	}, jwt.WithAudience(audience), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("invalid token: %w", err)
	}
	return claims.Subject, nil
}
