package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"alcyxob/workout-log/internal/domain"
)

const tokenIssuer = "workout-log"

// TokenService mints and verifies the signed tokens that identify a user.
// Identity itself is owned by an external provider; tokens only carry its user id.
type TokenService interface {
	IssueToken(userID string) (string, error)
	ParsePrincipal(token string) (domain.Principal, error)
}

// tokenService implements the TokenService interface.
type tokenService struct {
	jwtSecret     string
	jwtExpiration time.Duration
	now           func() time.Time
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(jwtSecret string, jwtExpiration time.Duration) TokenService {
	if jwtSecret == "" {
		panic("JWT secret cannot be empty") // Critical configuration
	}
	if jwtExpiration <= 0 {
		jwtExpiration = 24 * time.Hour
	}
	return &tokenService{
		jwtSecret:     jwtSecret,
		jwtExpiration: jwtExpiration,
		now:           time.Now,
	}
}

// jwtClaims defines the structure of the JWT payload.
type jwtClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}

// IssueToken creates an HS256 token for userID.
func (s *tokenService) IssueToken(userID string) (string, error) {
	if userID == "" {
		return "", invalidField("user", "is required")
	}
	now := s.now()
	claims := &jwtClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    tokenIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}
	return signed, nil
}

// ParsePrincipal verifies signature, algorithm and expiry, and returns the token's user.
func (s *tokenService) ParsePrincipal(tokenString string) (domain.Principal, error) {
	claims := &jwtClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		var vErr *jwt.ValidationError
		if errors.As(err, &vErr) && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return domain.Principal{}, fmt.Errorf("%w: token expired", ErrInvalidToken)
		}
		return domain.Principal{}, ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return domain.Principal{}, ErrInvalidToken
	}
	return domain.Principal{UserID: claims.UserID}, nil
}
