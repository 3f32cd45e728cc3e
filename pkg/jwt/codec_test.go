package jwt_test

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tokenkit/pkg/jwt"
)

var issued = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSignVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range allAlgorithms() {
		t.Run(alg.String(), func(t *testing.T) {
			t.Parallel()
			cfg := signingConfigFor(t, alg)

			token, err := jwt.Sign(cfg, map[string]any{"role": "moderator", "pat": true},
				jwt.WithID("token-1"),
				jwt.WithIssuer("t1"),
				jwt.WithSubject("u1"),
				jwt.WithAudience("talk"),
				jwt.WithIssuedAt(issued),
				jwt.WithNotBefore(issued),
				jwt.WithExpiresIn(time.Hour),
			)
			require.NoError(t, err)
			assert.Len(t, strings.Split(token, "."), 3)

			claims, err := jwt.Verify(token, cfg, issued.Add(30*time.Minute))
			require.NoError(t, err)

			assert.Equal(t, jwt.StandardClaims{
				ID:        "token-1",
				Subject:   "u1",
				Issuer:    "t1",
				Audience:  "talk",
				ExpiresAt: issued.Add(time.Hour).Unix(),
				NotBefore: issued.Unix(),
				IssuedAt:  issued.Unix(),
			}, claims.StandardClaims)
			assert.Equal(t, map[string]any{"role": "moderator", "pat": true}, claims.Custom)
		})
	}
}

func TestSign(t *testing.T) {
	t.Parallel()
	cfg := jwt.NewSymmetricSigningConfig(jwt.HS256, "s3cret")

	t.Run("header pins configured algorithm", func(t *testing.T) {
		for _, alg := range []jwt.SymmetricAlgorithm{jwt.HS256, jwt.HS384, jwt.HS512} {
			token, err := jwt.Sign(jwt.NewSymmetricSigningConfig(alg, "s3cret"), nil)
			require.NoError(t, err)

			header, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[0])
			require.NoError(t, err)
			assert.Contains(t, string(header), `"alg":"`+alg.String()+`"`)
			assert.Contains(t, string(header), `"typ":"JWT"`)
		}
	})

	t.Run("deterministic for symmetric algorithms", func(t *testing.T) {
		a, err := jwt.Sign(cfg, map[string]any{"k": "v"}, jwt.WithIssuedAt(issued))
		require.NoError(t, err)
		b, err := jwt.Sign(cfg, map[string]any{"k": "v"}, jwt.WithIssuedAt(issued))
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("rejects registered claims in payload", func(t *testing.T) {
		for _, name := range []string{"iss", "sub", "aud", "jti", "exp", "nbf", "iat"} {
			_, err := jwt.Sign(cfg, map[string]any{name: "x"})
			assert.ErrorIs(t, err, jwt.ErrInvalidClaims, name)
		}
	})

	t.Run("later options win", func(t *testing.T) {
		token, err := jwt.Sign(cfg, nil,
			jwt.WithIssuedAt(issued),
			jwt.WithSubject("first"),
			jwt.WithSubject("second"),
			jwt.WithExpiresIn(time.Hour),
			jwt.WithExpiresAt(issued.Add(2*time.Hour)),
		)
		require.NoError(t, err)

		claims, err := jwt.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, "second", claims.Subject)
		assert.Equal(t, issued.Add(2*time.Hour).Unix(), claims.ExpiresAt)
	})

	t.Run("without expiry and issued at", func(t *testing.T) {
		token, err := jwt.Sign(cfg, nil, jwt.WithExpiresIn(time.Hour), jwt.WithoutExpiry(), jwt.WithoutIssuedAt())
		require.NoError(t, err)

		claims, err := jwt.Decode(token)
		require.NoError(t, err)
		assert.Zero(t, claims.ExpiresAt)
		assert.Zero(t, claims.IssuedAt)
	})

	t.Run("zero times leave nbf and exp out", func(t *testing.T) {
		token, err := jwt.Sign(cfg, nil,
			jwt.WithIssuedAt(issued),
			jwt.WithNotBefore(issued), jwt.WithNotBefore(time.Time{}),
			jwt.WithExpiresIn(time.Hour), jwt.WithExpiresAt(time.Time{}),
		)
		require.NoError(t, err)

		payload, err := base64.RawURLEncoding.DecodeString(strings.Split(token, ".")[1])
		require.NoError(t, err)
		assert.NotContains(t, string(payload), `"nbf"`)
		assert.NotContains(t, string(payload), `"exp"`)

		_, err = jwt.Verify(token, cfg, issued.Add(-time.Minute))
		assert.NoError(t, err, "no nbf means valid before iat too")
	})

	t.Run("issued at defaults to wall clock", func(t *testing.T) {
		before := time.Now().Unix()
		token, err := jwt.Sign(cfg, nil)
		require.NoError(t, err)

		claims, err := jwt.Decode(token)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, claims.IssuedAt, before)
		assert.LessOrEqual(t, claims.IssuedAt, time.Now().Unix())
	})

	t.Run("zero config", func(t *testing.T) {
		_, err := jwt.Sign(jwt.SigningConfig{}, nil)
		assert.ErrorIs(t, err, jwt.ErrMissingSigningKey)
	})

	t.Run("asymmetric config with garbage key", func(t *testing.T) {
		_, err := jwt.Sign(jwt.NewAsymmetricSigningConfig(jwt.RS256, "not a pem"), nil)
		assert.ErrorIs(t, err, jwt.ErrInvalidSigningKey)
	})

	t.Run("verify-only config cannot sign", func(t *testing.T) {
		pub := jwt.NewAsymmetricSigningConfig(jwt.ES256, testKeys(t, jwt.ES256).public)
		_, err := jwt.Sign(pub, nil)
		assert.ErrorIs(t, err, jwt.ErrInvalidSigningKey)
	})

	t.Run("curve must match algorithm", func(t *testing.T) {
		mismatched := jwt.NewAsymmetricSigningConfig(jwt.ES384, testKeys(t, jwt.ES256).private)
		_, err := jwt.Sign(mismatched, nil)
		assert.ErrorIs(t, err, jwt.ErrInvalidSigningKey)
	})
}

func TestVerify_TimeBoundaries(t *testing.T) {
	t.Parallel()

	cfg := jwt.NewSymmetricSigningConfig(jwt.HS256, "s3cret")
	nbf := issued.Add(10 * time.Minute)
	exp := issued.Add(time.Hour)

	token, err := jwt.Sign(cfg, nil,
		jwt.WithIssuedAt(issued),
		jwt.WithNotBefore(nbf),
		jwt.WithExpiresAt(exp),
	)
	require.NoError(t, err)

	tests := []struct {
		name    string
		now     time.Time
		wantErr error
	}{
		{"before nbf", nbf.Add(-time.Second), jwt.ErrTokenNotValidYet},
		{"exactly nbf", nbf, nil},
		{"inside window", nbf.Add(20 * time.Minute), nil},
		{"one second before exp", exp.Add(-time.Second), nil},
		{"exactly exp", exp, jwt.ErrTokenExpired},
		{"after exp", exp.Add(time.Second), jwt.ErrTokenExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := jwt.Verify(token, cfg, tt.now)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.NotNil(t, claims)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
			assert.Nil(t, claims)
		})
	}

	t.Run("clock tolerance widens both edges", func(t *testing.T) {
		_, err := jwt.Verify(token, cfg, exp.Add(20*time.Second), jwt.WithClockTolerance(30*time.Second))
		assert.NoError(t, err)
		_, err = jwt.Verify(token, cfg, nbf.Add(-20*time.Second), jwt.WithClockTolerance(30*time.Second))
		assert.NoError(t, err)
	})

	t.Run("no exp never expires unless required", func(t *testing.T) {
		forever, err := jwt.Sign(cfg, nil, jwt.WithIssuedAt(issued))
		require.NoError(t, err)

		_, err = jwt.Verify(forever, cfg, issued.AddDate(50, 0, 0))
		assert.NoError(t, err)

		_, err = jwt.Verify(forever, cfg, issued, jwt.WithRequiredExpiry())
		assert.ErrorIs(t, err, jwt.ErrInvalidClaims)
	})
}

func TestVerify_AlgorithmPinning(t *testing.T) {
	t.Parallel()

	t.Run("same secret different HMAC size", func(t *testing.T) {
		signer := jwt.NewSymmetricSigningConfig(jwt.HS256, "s3cret")
		verifier := jwt.NewSymmetricSigningConfig(jwt.HS384, "s3cret")

		token, err := jwt.Sign(signer, nil, jwt.WithIssuedAt(issued))
		require.NoError(t, err)

		_, err = jwt.Verify(token, verifier, issued)
		assert.ErrorIs(t, err, jwt.ErrUnexpectedSigningMethod)
		assert.ErrorIs(t, err, jwt.ErrTokenInvalid)
	})

	t.Run("public key used as HMAC secret", func(t *testing.T) {
		kp := testKeys(t, jwt.RS256)
		verifier := jwt.NewAsymmetricSigningConfig(jwt.RS256, kp.public)

		forged, err := jwt.Sign(jwt.NewSymmetricSigningConfig(jwt.HS256, kp.public), nil,
			jwt.WithSubject("admin"), jwt.WithIssuedAt(issued))
		require.NoError(t, err)

		_, err = jwt.Verify(forged, verifier, issued)
		assert.ErrorIs(t, err, jwt.ErrUnexpectedSigningMethod)
	})

	t.Run("alg none", func(t *testing.T) {
		unsigned, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.MapClaims{"sub": "admin"}).
			SignedString(gojwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = jwt.Verify(unsigned, jwt.NewSymmetricSigningConfig(jwt.HS256, "s3cret"), issued)
		assert.ErrorIs(t, err, jwt.ErrUnexpectedSigningMethod)
	})

	t.Run("RS and PS share keys but not tokens", func(t *testing.T) {
		kp := testKeys(t, jwt.RS256)
		token, err := jwt.Sign(jwt.NewAsymmetricSigningConfig(jwt.RS256, kp.private), nil)
		require.NoError(t, err)

		_, err = jwt.Verify(token, jwt.NewAsymmetricSigningConfig(jwt.PS256, kp.private), time.Now())
		assert.ErrorIs(t, err, jwt.ErrUnexpectedSigningMethod)
	})
}

func TestVerify_Failures(t *testing.T) {
	t.Parallel()

	cfg := jwt.NewSymmetricSigningConfig(jwt.HS256, "s3cret")
	token, err := jwt.Sign(cfg, nil, jwt.WithIssuer("t1"), jwt.WithSubject("u1"), jwt.WithAudience("talk"),
		jwt.WithIssuedAt(issued), jwt.WithExpiresIn(time.Hour))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := jwt.Verify(token, jwt.NewSymmetricSigningConfig(jwt.HS256, "other"), issued)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(token, ".")
		parts[1] = base64.RawURLEncoding.EncodeToString([]byte(`{"sub":"admin","iss":"t1"}`))
		_, err := jwt.Verify(strings.Join(parts, "."), cfg, issued)
		assert.ErrorIs(t, err, jwt.ErrInvalidSignature)
	})

	t.Run("malformed", func(t *testing.T) {
		for _, bad := range []string{"", "invalid-token", "a.b", "a.b.c.d", "!!.??.**"} {
			_, err := jwt.Verify(bad, cfg, issued)
			assert.ErrorIs(t, err, jwt.ErrTokenInvalid, bad)
		}
		_, err := jwt.Verify("invalid-token", cfg, issued)
		assert.ErrorIs(t, err, jwt.ErrMalformedToken)
	})

	t.Run("error carries token and cause", func(t *testing.T) {
		_, err := jwt.Verify(token, cfg, issued.Add(2*time.Hour))

		var invalid *jwt.TokenInvalidError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, token, invalid.Token)
		assert.ErrorIs(t, invalid.Err, jwt.ErrTokenExpired)
		assert.ErrorIs(t, err, gojwt.ErrTokenExpired, "library cause is preserved")
	})

	t.Run("claim expectations", func(t *testing.T) {
		_, err := jwt.Verify(token, cfg, issued, jwt.WithExpectedIssuer("t1"),
			jwt.WithExpectedSubject("u1"), jwt.WithExpectedAudience("talk"))
		require.NoError(t, err)

		_, err = jwt.Verify(token, cfg, issued, jwt.WithExpectedIssuer("t2"))
		assert.ErrorIs(t, err, jwt.ErrInvalidClaims)
		_, err = jwt.Verify(token, cfg, issued, jwt.WithExpectedAudience("admin"))
		assert.ErrorIs(t, err, jwt.ErrInvalidClaims)
		_, err = jwt.Verify(token, cfg, issued, jwt.WithExpectedSubject("u2"))
		assert.ErrorIs(t, err, jwt.ErrInvalidClaims)
	})

	t.Run("required token id", func(t *testing.T) {
		_, err := jwt.Verify(token, cfg, issued, jwt.WithRequiredTokenID())
		assert.ErrorIs(t, err, jwt.ErrInvalidClaims)

		withID, err := jwt.Sign(cfg, nil, jwt.WithID("abc"), jwt.WithIssuedAt(issued))
		require.NoError(t, err)
		claims, err := jwt.Verify(withID, cfg, issued, jwt.WithRequiredTokenID())
		require.NoError(t, err)
		assert.Equal(t, "abc", claims.ID)
	})

	t.Run("broken config is not a token error", func(t *testing.T) {
		_, err := jwt.Verify(token, jwt.NewAsymmetricSigningConfig(jwt.RS256, "garbage"), issued)
		assert.ErrorIs(t, err, jwt.ErrInvalidSigningKey)
		assert.NotErrorIs(t, err, jwt.ErrTokenInvalid)
	})
}

func TestVerify_PublicKeyOnly(t *testing.T) {
	t.Parallel()

	for _, alg := range []jwt.AsymmetricAlgorithm{jwt.RS512, jwt.ES384, jwt.PS384} {
		t.Run(alg.String(), func(t *testing.T) {
			kp := testKeys(t, alg)
			token, err := jwt.Sign(jwt.NewAsymmetricSigningConfig(alg, kp.private), nil, jwt.WithSubject("u1"))
			require.NoError(t, err)

			claims, err := jwt.Verify(token, jwt.NewAsymmetricSigningConfig(alg, singleLine(kp.public)), time.Now())
			require.NoError(t, err)
			assert.Equal(t, "u1", claims.Subject)
		})
	}
}

func TestDecode(t *testing.T) {
	t.Parallel()

	cfg := jwt.NewSymmetricSigningConfig(jwt.HS512, "s3cret")

	t.Run("reads claims without a key", func(t *testing.T) {
		token, err := jwt.Sign(cfg, map[string]any{"pat": true}, jwt.WithIssuer("t1"),
			jwt.WithIssuedAt(issued), jwt.WithExpiresIn(-time.Hour))
		require.NoError(t, err)

		claims, err := jwt.Decode(token)
		require.NoError(t, err, "expired tokens still decode")
		assert.Equal(t, "t1", claims.Issuer)
		assert.True(t, claims.GetBool("pat"))
	})

	t.Run("ignores signature", func(t *testing.T) {
		token, err := jwt.Sign(cfg, nil, jwt.WithIssuer("t1"))
		require.NoError(t, err)

		claims, err := jwt.Decode(token[:len(token)-4] + "AAAA")
		require.NoError(t, err)
		assert.Equal(t, "t1", claims.Issuer)
	})

	t.Run("malformed input", func(t *testing.T) {
		_, err := jwt.Decode("not.a.jwt")
		assert.ErrorIs(t, err, jwt.ErrMalformedToken)

		var invalid *jwt.TokenInvalidError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "not.a.jwt", invalid.Token)
	})

	t.Run("wrongly typed registered claim", func(t *testing.T) {
		bad, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims{"jti": 42}).SignedString([]byte("k"))
		require.NoError(t, err)

		_, err = jwt.Decode(bad)
		assert.ErrorIs(t, err, jwt.ErrInvalidClaims)
	})
}
