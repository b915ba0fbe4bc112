package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	apperrors "github.com/allisson/courier/internal/errors"
)

// jwtTokenService implements TokenService with HMAC-signed JWTs.
type jwtTokenService struct {
	secret     []byte
	expiration time.Duration
}

// NewJWTTokenService creates a TokenService signing tokens with HMAC-SHA256.
func NewJWTTokenService(secret string, expiration time.Duration) (TokenService, error) {
	if secret == "" {
		return nil, apperrors.New("jwt secret must not be empty")
	}

	return &jwtTokenService{
		secret:     []byte(secret),
		expiration: expiration,
	}, nil
}

// Issue creates a signed token carrying the principal ID as subject.
func (s *jwtTokenService) Issue(principalID uuid.UUID) (string, error) {
	now := time.Now().UTC()

	claims := jwt.RegisteredClaims{
		Subject:   principalID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", apperrors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify validates the token signature and expiry and returns the subject.
func (s *jwtTokenService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&jwt.RegisteredClaims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, apperrors.New("unexpected signing method")
			}
			return s.secret, nil
		},
	)
	if err != nil || !token.Valid {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token claims")
	}

	principalID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(apperrors.ErrUnauthorized, "invalid token subject")
	}

	return principalID, nil
}
