package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
)

const defaultTokenTTL = 7 * 24 * time.Hour

// tokenClaims embeds the registered claim set plus the authenticated user id.
type tokenClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

// TokenService issues and validates HS256-signed bearer tokens. The signing
// key is process-wide configuration; rotating it invalidates all outstanding
// tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue encodes the user id and an expiry into a signed token.
func (s *TokenService) Issue(userID string) (string, error) {
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(s.now().Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(s.now()),
		},
		UserID: userID,
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the embedded user id.
// It fails closed: any parse error, signature mismatch, expired claim, or
// missing id yields domain.ErrInvalidToken.
func (s *TokenService) Validate(token string) (string, error) {
	claims := &tokenClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !tkn.Valid || claims.UserID == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.UserID, nil
}
