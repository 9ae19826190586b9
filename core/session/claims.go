package session

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	ErrMalformedToken = errors.New("malformed session token")
	ErrNoUserID       = errors.New("session token carries no user id")
)

// Claims is the subset of the backend token payload the console cares about.
// Depending on the backend version the user id arrives as `id` or `userId`.
type Claims struct {
	jwt.RegisteredClaims
	ID     int `json:"id,omitempty"`
	UserID int `json:"userId,omitempty"`
}

// UsuarioID returns the user id from whichever payload field carries it,
// or 0 when neither does.
func (c *Claims) UsuarioID() int {
	if c.ID != 0 {
		return c.ID
	}
	return c.UserID
}

// DecodeClaims decodes the payload segment of a session token without
// verifying its signature; the backend is the verifier and rejects bad
// tokens on the first authenticated call. Callers must treat a decode
// failure exactly like a missing session.
func DecodeClaims(token string) (*Claims, error) {
	claims := new(Claims)
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, errors.Wrapf(ErrMalformedToken, "parsing token: %v", err)
	}
	if claims.UsuarioID() == 0 {
		return nil, ErrNoUserID
	}
	return claims, nil
}
