package sampler

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrTokenExpired = errors.New("model token expired")

// checkToken rejects a JWT whose exp claim has passed. The signature is
// verified by the model server, not here.
func checkToken(token string) error {
	claims := &jwt.StandardClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(token, claims); err != nil {
		return fmt.Errorf("can't parse model token: %w", err)
	}
	if !claims.VerifyExpiresAt(time.Now().Unix(), false) {
		return fmt.Errorf("%w at %s", ErrTokenExpired, time.Unix(claims.ExpiresAt, 0).UTC().Format(time.RFC3339))
	}
	return nil
}
