package jwt_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tokenkit/pkg/jwt"
)

type keyPair struct {
	private string
	public  string
}

var (
	keysMu sync.Mutex
	keys   = map[string]keyPair{}
)

// testKeys returns PEM encoded keys for alg, generated once per test binary.
func testKeys(t *testing.T, alg jwt.AsymmetricAlgorithm) keyPair {
	t.Helper()

	name := "rsa"
	var curve elliptic.Curve
	switch alg {
	case jwt.ES256:
		name, curve = "p256", elliptic.P256()
	case jwt.ES384:
		name, curve = "p384", elliptic.P384()
	case jwt.ES512:
		name, curve = "p521", elliptic.P521()
	}

	keysMu.Lock()
	defer keysMu.Unlock()
	if kp, ok := keys[name]; ok {
		return kp
	}

	var kp keyPair
	if curve == nil {
		key, err := rsa.GenerateKey(rand.Reader, 2048)
		require.NoError(t, err)
		pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		require.NoError(t, err)
		kp = keyPair{
			private: encodePEM("RSA PRIVATE KEY", x509.MarshalPKCS1PrivateKey(key)),
			public:  encodePEM("PUBLIC KEY", pub),
		}
	} else {
		key, err := ecdsa.GenerateKey(curve, rand.Reader)
		require.NoError(t, err)
		der, err := x509.MarshalECPrivateKey(key)
		require.NoError(t, err)
		pub, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
		require.NoError(t, err)
		kp = keyPair{
			private: encodePEM("EC PRIVATE KEY", der),
			public:  encodePEM("PUBLIC KEY", pub),
		}
	}

	keys[name] = kp
	return kp
}

func encodePEM(blockType string, der []byte) string {
	return string(pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der}))
}

// singleLine mimics a PEM stored in a one-line environment variable.
func singleLine(s string) string {
	return strings.ReplaceAll(s, "\n", `\n`)
}

// signingConfigFor builds a config for any of the twelve algorithms.
func signingConfigFor(t *testing.T, alg jwt.Algorithm) jwt.SigningConfig {
	t.Helper()
	switch a := alg.(type) {
	case jwt.SymmetricAlgorithm:
		return jwt.NewSymmetricSigningConfig(a, "s3cret-"+a.String())
	case jwt.AsymmetricAlgorithm:
		return jwt.NewAsymmetricSigningConfig(a, singleLine(testKeys(t, a).private))
	}
	t.Fatalf("unexpected algorithm %v", alg)
	return jwt.SigningConfig{}
}

func allAlgorithms() []jwt.Algorithm {
	algs := make([]jwt.Algorithm, 0, len(jwt.SymmetricAlgorithms)+len(jwt.AsymmetricAlgorithms))
	for _, a := range jwt.SymmetricAlgorithms {
		algs = append(algs, a)
	}
	for _, a := range jwt.AsymmetricAlgorithms {
		algs = append(algs, a)
	}
	return algs
}
