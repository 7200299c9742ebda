package auth

import (
	"context"
	"crypto/rsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	GoogleCertsURL       = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	firebaseIssuerPrefix = "https://securetoken.google.com/"
	defaultCertsMaxAge   = time.Hour
)

// KeySource resolves the RSA public key for a token's kid header.
type KeySource interface {
	PublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error)
}

type firebaseClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// FirebaseVerifier checks Firebase ID tokens for a single project.
type FirebaseVerifier struct {
	projectID string
	keys      KeySource
	now       func() time.Time
}

func NewFirebaseVerifier(projectID string, keys KeySource) *FirebaseVerifier {
	return &FirebaseVerifier{projectID: projectID, keys: keys, now: time.Now}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, raw string) (Identity, error) {
	claims := &firebaseClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid header")
		}
		return v.keys.PublicKey(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(firebaseIssuerPrefix+v.projectID),
		jwt.WithAudience(v.projectID),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Identity{}, err
	}
	if claims.Subject == "" {
		return Identity{}, errors.New("missing subject")
	}
	return Identity{Kind: KindFirebase, Subject: claims.Subject, Email: claims.Email, Role: "user"}, nil
}

// StaticKeys is a fixed kid -> key set.
type StaticKeys map[string]*rsa.PublicKey

func (s StaticKeys) PublicKey(_ context.Context, kid string) (*rsa.PublicKey, error) {
	k, ok := s[kid]
	if !ok {
		return nil, fmt.Errorf("unknown kid %q", kid)
	}
	return k, nil
}

var maxAgeRe = regexp.MustCompile(`max-age=(\d+)`)

// GoogleCerts fetches Google's x509 signing certs and caches them for as
// long as the response's Cache-Control allows.
type GoogleCerts struct {
	url    string
	client *http.Client

	mu      sync.Mutex
	keys    map[string]*rsa.PublicKey
	expires time.Time
}

func NewGoogleCerts(client *http.Client) *GoogleCerts {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &GoogleCerts{url: GoogleCertsURL, client: client}
}

func (g *GoogleCerts) PublicKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.keys == nil || time.Now().After(g.expires) {
		if err := g.refresh(ctx); err != nil {
			return nil, err
		}
	}
	k, ok := g.keys[kid]
	if !ok {
		return nil, fmt.Errorf("unknown kid %q", kid)
	}
	return k, nil
}

func (g *GoogleCerts) refresh(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch signing certs: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch signing certs: status %d", resp.StatusCode)
	}

	var pems map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&pems); err != nil {
		return fmt.Errorf("decode signing certs: %w", err)
	}

	keys := make(map[string]*rsa.PublicKey, len(pems))
	for kid, pem := range pems {
		k, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pem))
		if err != nil {
			return fmt.Errorf("parse cert %s: %w", kid, err)
		}
		keys[kid] = k
	}

	maxAge := defaultCertsMaxAge
	if m := maxAgeRe.FindStringSubmatch(resp.Header.Get("Cache-Control")); m != nil {
		if secs, err := strconv.Atoi(m[1]); err == nil {
			maxAge = time.Duration(secs) * time.Second
		}
	}

	g.keys = keys
	g.expires = time.Now().Add(maxAge)
	return nil
}
