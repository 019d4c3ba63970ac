package services

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const sessionIssuer = "modeva-storefront"

// CustomerClaims is the payload of a storefront session token.
type CustomerClaims struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Name     string `json:"name,omitempty"`
	Provider string `json:"provider,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies customer session tokens.
type JWTService struct {
	secretKey []byte
	expiry    time.Duration
	now       func() time.Time
}

var (
	jwtMu      sync.RWMutex
	jwtService *JWTService
)

// NewJWTService builds a service. Expiry falls back to 24h.
func NewJWTService(secretKey string, expiry time.Duration) (*JWTService, error) {
	if secretKey == "" {
		return nil, errors.New("JWT secret key cannot be empty")
	}
	if expiry <= 0 {
		expiry = 24 * time.Hour
	}
	return &JWTService{secretKey: []byte(secretKey), expiry: expiry, now: time.Now}, nil
}

// InitJWTService installs the shared service.
func InitJWTService(secretKey string, expiry time.Duration) error {
	svc, err := NewJWTService(secretKey, expiry)
	if err != nil {
		return err
	}
	jwtMu.Lock()
	jwtService = svc
	jwtMu.Unlock()
	return nil
}

// GetJWTService returns the shared service, falling back to a development secret.
func GetJWTService() *JWTService {
	jwtMu.RLock()
	svc := jwtService
	jwtMu.RUnlock()
	if svc != nil {
		return svc
	}

	jwtMu.Lock()
	defer jwtMu.Unlock()
	if jwtService == nil {
		jwtService, _ = NewJWTService("dev-secret-key-change-in-production", 0)
	}
	return jwtService
}

// Expiry is the lifetime of newly issued tokens.
func (j *JWTService) Expiry() time.Duration { return j.expiry }

// GenerateCustomerJWT issues a token and reports when it expires.
func (j *JWTService) GenerateCustomerJWT(userID, email, name, provider string) (string, time.Time, error) {
	if userID == "" || email == "" {
		return "", time.Time{}, errors.New("userID and email cannot be empty")
	}

	now := j.now()
	expiresAt := now.Add(j.expiry)

	claims := CustomerClaims{
		UserID:   userID,
		Email:    email,
		Name:     name,
		Provider: provider,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secretKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// VerifyCustomerJWT parses a token and checks signature, expiry and issuer.
func (j *JWTService) VerifyCustomerJWT(tokenString string) (*CustomerClaims, error) {
	claims := &CustomerClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithIssuer(sessionIssuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.UserID == "" || claims.Email == "" {
		return nil, errors.New("token missing required claims")
	}
	return claims, nil
}

// ExtractBearerToken pulls the token out of an "Authorization: Bearer <token>" header.
func ExtractBearerToken(authHeader string) (string, error) {
	if authHeader == "" {
		return "", errors.New("authorization header is empty")
	}
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return "", errors.New("authorization header must start with 'Bearer '")
	}
	token := strings.TrimSpace(authHeader[len(bearerPrefix):])
	if token == "" {
		return "", errors.New("token is empty")
	}
	return token, nil
}
