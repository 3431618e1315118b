package auth

import (
	"strings"
	"testing"
	"time"

	"tasker/config"
	"tasker/internal/domain/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

func newTestConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.ApplyDefaults()

	return cfg
}

func newTestJWTService(t *testing.T) *jwtService {
	t.Helper()

	svc, err := NewJWTService(newTestConfig(testSecret), nil)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func testClaims() service.Claims {
	return service.Claims{UserID: uuid.NewString(), Email: "alice@example.com"}
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc := newTestJWTService(t)
	claims := testClaims()

	token, err := svc.Issue(claims, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	got, ok := svc.Verify(token)
	require.True(t, ok)
	assert.Equal(t, claims.UserID, got.UserID)
	assert.Equal(t, claims.Email, got.Email)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 2*time.Second)
	assert.WithinDuration(t, time.Now(), got.IssuedAt, 2*time.Second)
	assert.Equal(t, time.UTC, got.ExpiresAt.Location())
}

func TestJWTService_ExpiredImmediately(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.Issue(testClaims(), -time.Second)
	require.NoError(t, err)

	got, ok := svc.Verify(token)
	assert.False(t, ok)
	assert.Nil(t, got)
}

func TestJWTService_ExpiresAfterTTL(t *testing.T) {
	svc := newTestJWTService(t)
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(testClaims(), 30*time.Minute)
	require.NoError(t, err)

	svc.now = func() time.Time { return issuedAt.Add(29 * time.Minute) }
	_, ok := svc.Verify(token)
	assert.True(t, ok)

	svc.now = func() time.Time { return issuedAt.Add(31 * time.Minute) }
	_, ok = svc.Verify(token)
	assert.False(t, ok)
}

func TestJWTService_LeewayAbsorbsSkew(t *testing.T) {
	cfg := newTestConfig(testSecret)
	cfg.Token.Leeway = time.Minute
	svc, err := NewJWTService(cfg, nil)
	require.NoError(t, err)
	impl := svc.(*jwtService)

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	impl.now = func() time.Time { return issuedAt }
	token, err := impl.Issue(testClaims(), time.Minute)
	require.NoError(t, err)

	impl.now = func() time.Time { return issuedAt.Add(90 * time.Second) }
	_, ok := impl.Verify(token)
	assert.True(t, ok, "30s past expiry is inside a one minute leeway")

	impl.now = func() time.Time { return issuedAt.Add(3 * time.Minute) }
	_, ok = impl.Verify(token)
	assert.False(t, ok)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc := newTestJWTService(t)

	token, err := svc.Issue(testClaims(), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		UserID: uuid.NewString(),
		Email:  "mallory@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte("some-other-secret"))
	require.NoError(t, err)
	forgedParts := strings.Split(forged, ".")

	// Payload swapped in under the original signature.
	_, ok := svc.Verify(parts[0] + "." + forgedParts[1] + "." + parts[2])
	assert.False(t, ok)

	// Fully signed with a different secret.
	_, ok = svc.Verify(forged)
	assert.False(t, ok)
}

func TestJWTService_RejectsMalformedInput(t *testing.T) {
	svc := newTestJWTService(t)

	for _, token := range []string{"", "clearly-not-a-jwt-token-format", "a.b.c", "Bearer x.y.z"} {
		got, ok := svc.Verify(token)
		assert.False(t, ok, token)
		assert.Nil(t, got, token)
	}
}

func TestJWTService_RejectsUnexpectedAlgorithm(t *testing.T) {
	svc := newTestJWTService(t)
	now := time.Now()
	claims := tokenClaims{
		Email: "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	_, ok := svc.Verify(hs512)
	assert.False(t, ok)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, ok = svc.Verify(none)
	assert.False(t, ok)
}

func TestJWTService_RejectsMissingClaims(t *testing.T) {
	svc := newTestJWTService(t)
	now := time.Now()

	tests := []struct {
		name   string
		claims tokenClaims
	}{
		{
			name: "missing email",
			claims: tokenClaims{RegisteredClaims: jwt.RegisteredClaims{
				Subject: uuid.NewString(), IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "missing subject",
			claims: tokenClaims{Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "missing expiry",
			claims: tokenClaims{Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{
				Subject: uuid.NewString(), IssuedAt: jwt.NewNumericDate(now),
			}},
		},
		{
			name: "missing issued at",
			claims: tokenClaims{Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{
				Subject: uuid.NewString(), ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
		{
			name: "user_id disagrees with subject",
			claims: tokenClaims{UserID: uuid.NewString(), Email: "a@b.c", RegisteredClaims: jwt.RegisteredClaims{
				Subject: uuid.NewString(), IssuedAt: jwt.NewNumericDate(now), ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString([]byte(testSecret))
			require.NoError(t, err)

			_, ok := svc.Verify(token)
			assert.False(t, ok)
		})
	}
}

func TestJWTService_IssueRequiresIdentity(t *testing.T) {
	svc := newTestJWTService(t)

	_, err := svc.Issue(service.Claims{Email: "a@b.c"}, time.Hour)
	assert.Error(t, err)

	_, err = svc.Issue(service.Claims{UserID: uuid.NewString()}, time.Hour)
	assert.Error(t, err)
}

func TestJWTService_Algorithms(t *testing.T) {
	for _, alg := range []string{"HS256", "hs384", "HS512"} {
		t.Run(alg, func(t *testing.T) {
			cfg := newTestConfig(testSecret)
			cfg.Token.Algorithm = alg
			svc, err := NewJWTService(cfg, nil)
			require.NoError(t, err)

			token, err := svc.Issue(testClaims(), time.Hour)
			require.NoError(t, err)
			_, ok := svc.Verify(token)
			assert.True(t, ok)
		})
	}

	cfg := newTestConfig(testSecret)
	cfg.Token.Algorithm = "RS256"
	_, err := NewJWTService(cfg, nil)
	assert.ErrorContains(t, err, "unsupported token algorithm")
}

func TestJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(newTestConfig("   "), nil)
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt secret must be provided")
}

func TestJWTService_ProductionSecretChecks(t *testing.T) {
	cfg := newTestConfig(InsecureDevelopmentSecret)
	cfg.Env.Env = config.EnvProduction
	_, err := NewJWTService(cfg, nil)
	assert.ErrorContains(t, err, "placeholder")

	cfg = newTestConfig("short-secret")
	cfg.Env.Env = config.EnvProduction
	_, err = NewJWTService(cfg, nil)
	assert.ErrorContains(t, err, "at least")

	cfg = newTestConfig(testSecret)
	cfg.Env.Env = config.EnvProduction
	_, err = NewJWTService(cfg, nil)
	assert.NoError(t, err)

	// Development tolerates the placeholder.
	_, err = NewJWTService(newTestConfig(InsecureDevelopmentSecret), nil)
	assert.NoError(t, err)
}

func TestJWTService_TTLsFromConfig(t *testing.T) {
	cfg := newTestConfig(testSecret)
	cfg.Token.TTL = 48 * time.Hour
	cfg.Token.LoginTTL = 0
	cfg.ApplyDefaults()

	svc, err := NewJWTService(cfg, nil)
	require.NoError(t, err)

	assert.Equal(t, 48*time.Hour, svc.DefaultTTL())
	assert.Equal(t, 48*time.Hour, svc.LoginTTL())
}
