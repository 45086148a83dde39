package session

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todokeeper/internal/client/repositories/kv"
	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Store keys owned by the session manager. The token and user record are
// always written and removed together; the signing secret outlives logins.
const (
	keyToken   = "session-token"
	keyUser    = "session-user"
	keySecret  = "session-signing-key"
	secretSize = 32
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Provider string `json:"prv,omitempty"`
}

// loadOrCreateSecret returns the per-install token signing secret, creating
// and persisting one on first use.
func loadOrCreateSecret(ctx context.Context, repo kv.Repository) ([]byte, error) {
	secret, err := repo.Get(ctx, keySecret)
	if err != nil {
		return nil, err
	}
	if len(secret) > 0 {
		return secret, nil
	}

	hexSecret, err := common.MakeRandHexString(secretSize)
	if err != nil {
		return nil, fmt.Errorf("generate signing secret: %w", err)
	}
	secret = []byte(hexSecret)
	if err := repo.Set(ctx, keySecret, secret); err != nil {
		return nil, err
	}
	return secret, nil
}

// mintToken issues the opaque session token for a login: an HS256 JWT
// bound to the user ID. No expiry is set; sessions end only on logout.
func mintToken(secret []byte, u *User, issuedAt time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  u.ID,
			ID:       uuid.NewString(),
			IssuedAt: jwt.NewNumericDate(issuedAt),
		},
		Provider: string(u.Provider),
	})

	return token.SignedString(secret)
}

// verifyToken checks the stored token against the signing secret and the
// stored user. Any mismatch means the stored pair is not trustworthy and
// the session is treated as absent.
func verifyToken(tokenString string, secret []byte, u *User) error {
	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return err
	}
	if !token.Valid {
		return fmt.Errorf("token is not valid")
	}
	if claims.Subject != u.ID {
		return fmt.Errorf("token subject %q does not match stored user %q", claims.Subject, u.ID)
	}
	return nil
}
