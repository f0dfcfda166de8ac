package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	// SessionCookie is the cookie carrying the session token.
	SessionCookie = "session_token"

	// TokenTTL is the session lifetime. The cookie Max-Age mirrors the
	// token's own exp claim, so both expire together.
	TokenTTL = 3 * time.Hour
)

var ErrInvalidToken = errors.New("invalid session token")

// Issuer signs and verifies session tokens. Tokens are stateless: logout
// only clears the cookie, a signed token stays valid until exp.
type Issuer struct {
	secret []byte
}

func NewIssuer(secret []byte) *Issuer {
	return &Issuer{secret: secret}
}

// Issue signs a token for the given user id with the standard TTL.
func (i *Issuer) Issue(userID string) (string, error) {
	return i.IssueWithTTL(userID, TokenTTL)
}

func (i *Issuer) IssueWithTTL(userID string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(i.secret)
}

// Verify checks signature and expiry and returns the embedded user id.
func (i *Issuer) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}
	if exp, ok := claims["exp"].(float64); !ok || int64(exp) < time.Now().Unix() {
		return "", ErrInvalidToken
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrInvalidToken
	}
	return userID, nil
}
