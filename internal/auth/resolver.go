package auth

import (
	"context"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Resolver turns an Authorization header into an Identity. The token's alg
// header picks exactly one verifier: RS256 goes to Firebase, HS256 to the
// local mock issuer. A token never falls through from one to the other.
type Resolver struct {
	firebase *FirebaseVerifier
	mock     *MockTokens
}

// NewResolver accepts a nil firebase verifier when Firebase is not configured.
func NewResolver(firebase *FirebaseVerifier, mock *MockTokens) *Resolver {
	return &Resolver{firebase: firebase, mock: mock}
}

func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if len(header) < 7 || !strings.EqualFold(header[:7], "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}

func (r *Resolver) Resolve(ctx context.Context, authorization string) Identity {
	raw := BearerToken(authorization)
	if raw == "" {
		return Anonymous()
	}

	tok, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	if err != nil {
		return rejected("malformed token")
	}

	switch tok.Method.Alg() {
	case jwt.SigningMethodRS256.Alg():
		if r.firebase == nil {
			return rejected("firebase verification is not configured")
		}
		id, err := r.firebase.Verify(ctx, raw)
		if err != nil {
			return rejected("firebase: " + err.Error())
		}
		return id
	case jwt.SigningMethodHS256.Alg():
		if r.mock == nil {
			return rejected("local tokens are not configured")
		}
		id, err := r.mock.Verify(raw)
		if err != nil {
			return rejected("mock: " + err.Error())
		}
		return id
	default:
		return rejected("unsupported token algorithm " + tok.Method.Alg())
	}
}
