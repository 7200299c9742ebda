// Package auth resolves bearer tokens into caller identities.
package auth

// Kind records which verification path produced an Identity.
type Kind string

const (
	KindAnonymous Kind = "anonymous"
	KindFirebase  Kind = "firebase"
	KindMock      Kind = "mock"
)

type Identity struct {
	Kind    Kind
	Subject string // firebase uid or local user id
	Email   string
	Role    string
	// Rejection is set when a token was presented but did not verify.
	Rejection string
}

func Anonymous() Identity {
	return Identity{Kind: KindAnonymous}
}

func rejected(reason string) Identity {
	return Identity{Kind: KindAnonymous, Rejection: reason}
}

func (i Identity) Authenticated() bool {
	return i.Kind != KindAnonymous && i.Subject != ""
}
