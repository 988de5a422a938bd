package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/khabaroff/jwt-auth-web/src/models"
)

const sessionIssuer = "jwt-auth-web"

// SessionClaims contains JWT claims for a browser session
type SessionClaims struct {
	User models.SessionUser `json:"user"`
	// APIToken is the backend token forwarded on API calls. It travels
	// sealed and is opened by Validate.
	APIToken string `json:"api_token"`
	jwt.RegisteredClaims
}

// SessionService signs and validates session cookies
type SessionService struct {
	secret []byte
	sealer *TokenSealer
	ttl    time.Duration
	now    func() time.Time
}

// NewSessionService creates a session service. The secret must be at least 32 characters.
func NewSessionService(secret string, ttl time.Duration) (*SessionService, error) {
	if len(secret) < 32 {
		return nil, fmt.Errorf("%w: JWT_SECRET must be at least 32 characters long", ErrSecretNotConfigured)
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	sealer, err := NewTokenSealer([]byte(secret))
	if err != nil {
		return nil, err
	}
	return &SessionService{secret: []byte(secret), sealer: sealer, ttl: ttl, now: time.Now}, nil
}

// TTL returns how long issued sessions stay valid
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed session token for the user
func (s *SessionService) Issue(user models.SessionUser, apiToken string) (string, error) {
	sealed, err := s.sealer.Seal(apiToken)
	if err != nil {
		return "", fmt.Errorf("failed to seal api token: %w", err)
	}

	now := s.now()
	claims := SessionClaims{
		User:     user,
		APIToken: sealed,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses and validates a session token
func (s *SessionService) Validate(tokenString string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	apiToken, err := s.sealer.Open(claims.APIToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims.APIToken = apiToken

	return claims, nil
}
