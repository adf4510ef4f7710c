package auth

import (
	"crypto/subtle"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	VerifierPlaintext = "plaintext"
	VerifierBcrypt    = "bcrypt"
)

// CredentialVerifier owns how passwords are stored and compared.
type CredentialVerifier interface {
	Hash(plain string) (string, error)
	Verify(stored, presented string) bool
}

// PlaintextVerifier stores passwords as given. It matches the credentials
// already in the users table and is the default until they are re-hashed.
type PlaintextVerifier struct{}

func (PlaintextVerifier) Hash(plain string) (string, error) { return plain, nil }

func (PlaintextVerifier) Verify(stored, presented string) bool {
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}

type BcryptVerifier struct {
	Cost int
}

func (v BcryptVerifier) Hash(plain string) (string, error) {
	cost := v.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (v BcryptVerifier) Verify(stored, presented string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(presented)) == nil
}

func NewVerifier(kind string, bcryptCost int) (CredentialVerifier, error) {
	switch kind {
	case VerifierPlaintext, "":
		return PlaintextVerifier{}, nil
	case VerifierBcrypt:
		if bcryptCost != 0 && (bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost) {
			return nil, fmt.Errorf("bcrypt cost %d out of range", bcryptCost)
		}
		return BcryptVerifier{Cost: bcryptCost}, nil
	}
	return nil, fmt.Errorf("unknown credential verifier %q", kind)
}
