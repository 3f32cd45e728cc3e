package jwt

import (
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Family partitions signing algorithms by the kind of key material they use.
type Family int

const (
	// FamilySymmetric algorithms share one secret between signer and verifier.
	FamilySymmetric Family = iota + 1
	// FamilyAsymmetric algorithms sign with a private key and verify with its public half.
	FamilyAsymmetric
)

func (f Family) String() string {
	switch f {
	case FamilySymmetric:
		return "symmetric"
	case FamilyAsymmetric:
		return "asymmetric"
	default:
		return "unknown"
	}
}

// Algorithm is a closed set of signing algorithms. Only SymmetricAlgorithm
// and AsymmetricAlgorithm implement it, so a type switch over the two is
// exhaustive.
type Algorithm interface {
	String() string
	Family() Family
	signingMethod() gojwt.SigningMethod
}

// SymmetricAlgorithm is an HMAC algorithm keyed by a shared secret.
type SymmetricAlgorithm string

const (
	HS256 SymmetricAlgorithm = "HS256"
	HS384 SymmetricAlgorithm = "HS384"
	HS512 SymmetricAlgorithm = "HS512"
)

// SymmetricAlgorithms lists every supported symmetric algorithm.
var SymmetricAlgorithms = []SymmetricAlgorithm{HS256, HS384, HS512}

func (a SymmetricAlgorithm) String() string { return string(a) }

func (a SymmetricAlgorithm) Family() Family { return FamilySymmetric }

func (a SymmetricAlgorithm) signingMethod() gojwt.SigningMethod {
	switch a {
	case HS256:
		return gojwt.SigningMethodHS256
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	}
	return nil
}

// AsymmetricAlgorithm is an RSA, RSA-PSS or ECDSA algorithm keyed by a PEM keypair.
type AsymmetricAlgorithm string

const (
	RS256 AsymmetricAlgorithm = "RS256"
	RS384 AsymmetricAlgorithm = "RS384"
	RS512 AsymmetricAlgorithm = "RS512"
	ES256 AsymmetricAlgorithm = "ES256"
	ES384 AsymmetricAlgorithm = "ES384"
	ES512 AsymmetricAlgorithm = "ES512"
	PS256 AsymmetricAlgorithm = "PS256"
	PS384 AsymmetricAlgorithm = "PS384"
	PS512 AsymmetricAlgorithm = "PS512"
)

// AsymmetricAlgorithms lists every supported asymmetric algorithm.
var AsymmetricAlgorithms = []AsymmetricAlgorithm{
	RS256, RS384, RS512,
	ES256, ES384, ES512,
	PS256, PS384, PS512,
}

func (a AsymmetricAlgorithm) String() string { return string(a) }

func (a AsymmetricAlgorithm) Family() Family { return FamilyAsymmetric }

func (a AsymmetricAlgorithm) signingMethod() gojwt.SigningMethod {
	switch a {
	case RS256:
		return gojwt.SigningMethodRS256
	case RS384:
		return gojwt.SigningMethodRS384
	case RS512:
		return gojwt.SigningMethodRS512
	case ES256:
		return gojwt.SigningMethodES256
	case ES384:
		return gojwt.SigningMethodES384
	case ES512:
		return gojwt.SigningMethodES512
	case PS256:
		return gojwt.SigningMethodPS256
	case PS384:
		return gojwt.SigningMethodPS384
	case PS512:
		return gojwt.SigningMethodPS512
	}
	return nil
}

// isECDSA reports whether the algorithm expects an elliptic curve key.
func (a AsymmetricAlgorithm) isECDSA() bool {
	return a == ES256 || a == ES384 || a == ES512
}

// ParseAlgorithm classifies name against both algorithm enumerations.
// Matching is exact: "hs256" is not HS256.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, a := range SymmetricAlgorithms {
		if string(a) == name {
			return a, nil
		}
	}
	for _, a := range AsymmetricAlgorithms {
		if string(a) == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}
