package auth

import (
	googleAuthIDTokenVerifier "github.com/futurenda/google-auth-id-token-verifier"
)

// GoogleClaims is the subset of the Google ID token the service needs.
type GoogleClaims struct {
	Email   string
	Name    string
	Picture string
}

// GoogleVerifier abstracts Google ID token verification so the service can
// be tested without real Google tokens.
type GoogleVerifier interface {
	Verify(idToken string) (GoogleClaims, error)
}

type googleVerifier struct {
	clientID string
}

func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(idToken string) (GoogleClaims, error) {
	verifier := googleAuthIDTokenVerifier.Verifier{}
	if err := verifier.VerifyIDToken(idToken, []string{v.clientID}); err != nil {
		return GoogleClaims{}, err
	}

	claimSet, err := googleAuthIDTokenVerifier.Decode(idToken)
	if err != nil {
		return GoogleClaims{}, err
	}

	return GoogleClaims{
		Email:   claimSet.Email,
		Name:    claimSet.Name,
		Picture: claimSet.Picture,
	}, nil
}
