package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	mockTokenType = "access"
	mockTokenTTL  = 7 * 24 * time.Hour
)

type mockClaims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// MockTokens issues and verifies HS256 access tokens for local accounts.
type MockTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewMockTokens(secret string) *MockTokens {
	return &MockTokens{secret: []byte(secret), ttl: mockTokenTTL, now: time.Now}
}

func (m *MockTokens) Issue(subject, email, role string) (string, error) {
	now := m.now()
	claims := mockClaims{
		Email: email,
		Role:  role,
		Type:  mockTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *MockTokens) Verify(raw string) (Identity, error) {
	claims := &mockClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return Identity{}, err
	}
	if claims.Type != mockTokenType {
		return Identity{}, errors.New("not an access token")
	}
	if claims.Subject == "" {
		return Identity{}, errors.New("missing subject")
	}

	role := claims.Role
	if role == "" {
		role = "user"
	}
	return Identity{Kind: KindMock, Subject: claims.Subject, Email: claims.Email, Role: role}, nil
}
