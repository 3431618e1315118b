package auth

import (
	"log/slog"
	"strings"
	"time"

	"tasker/config"
	"tasker/internal/domain/service"
	"tasker/internal/errors"
	"tasker/internal/util"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// InsecureDevelopmentSecret is the placeholder shipped in config.yaml.
	// Production deployments refuse to start with it.
	InsecureDevelopmentSecret = "change-me-insecure-development-secret"

	minProductionSecretBytes = 32
)

// tokenClaims is the wire shape of an identity token. user_id duplicates sub
// for clients that read the custom claim.
type tokenClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret   []byte
	method   *jwt.SigningMethodHMAC
	ttl      time.Duration
	loginTTL time.Duration
	leeway   time.Duration
	now      func() time.Time
}

// NewJWTService is the constructor for jwtService. It refuses to build a
// service without a signing secret, and in production also rejects the
// development placeholder and short secrets.
func NewJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	secret := strings.TrimSpace(cfg.SecretKey.Access)
	if secret == "" {
		return nil, errors.New("jwt secret must be provided")
	}
	if cfg.IsProduction() {
		if secret == InsecureDevelopmentSecret {
			return nil, errors.New("jwt secret is the insecure development placeholder")
		}
		if len(secret) < minProductionSecretBytes {
			return nil, errors.Errorf("jwt secret must be at least %d bytes in production", minProductionSecretBytes)
		}
	}

	tokenCfg := cfg.Token
	if tokenCfg == nil {
		cfg.ApplyDefaults()
		tokenCfg = cfg.Token
	}

	method, err := signingMethod(tokenCfg.Algorithm)
	if err != nil {
		return nil, err
	}

	if logger != nil {
		logger.Info("Token service configured",
			slog.String("algorithm", method.Alg()),
			slog.String("ttl", util.FormatDuration(tokenCfg.TTL)),
			slog.String("loginTTL", util.FormatDuration(tokenCfg.LoginTTL)),
			slog.Duration("leeway", tokenCfg.Leeway),
		)
	}

	return &jwtService{
		secret:   []byte(secret),
		method:   method,
		ttl:      tokenCfg.TTL,
		loginTTL: tokenCfg.LoginTTL,
		leeway:   tokenCfg.Leeway,
		now:      time.Now,
	}, nil
}

func signingMethod(alg string) (*jwt.SigningMethodHMAC, error) {
	switch strings.ToUpper(strings.TrimSpace(alg)) {
	case "", "HS256":
		return jwt.SigningMethodHS256, nil
	case "HS384":
		return jwt.SigningMethodHS384, nil
	case "HS512":
		return jwt.SigningMethodHS512, nil
	default:
		return nil, errors.Errorf("unsupported token algorithm: %s", alg)
	}
}

// Issue creates a signed token for claims.UserID / claims.Email valid for ttl.
func (s *jwtService) Issue(claims service.Claims, ttl time.Duration) (string, error) {
	if claims.UserID == "" || claims.Email == "" {
		return "", errors.New("token claims require user id and email")
	}

	now := s.now().UTC()
	wire := tokenClaims{
		UserID: claims.UserID,
		Email:  claims.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(s.method, wire).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify parses and validates a token. Every failure collapses to false.
func (s *jwtService) Verify(tokenString string) (*service.Claims, bool) {
	if tokenString == "" {
		return nil, false
	}

	var wire tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &wire, func(token *jwt.Token) (any, error) {
		if token.Method != s.method {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(s.leeway),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, false
	}

	if wire.Subject == "" || wire.Email == "" || wire.IssuedAt == nil {
		return nil, false
	}
	if wire.UserID != "" && wire.UserID != wire.Subject {
		return nil, false
	}

	return &service.Claims{
		UserID:    wire.Subject,
		Email:     wire.Email,
		IssuedAt:  wire.IssuedAt.UTC(),
		ExpiresAt: wire.ExpiresAt.UTC(),
	}, true
}

// DefaultTTL returns the configured general-purpose token lifetime.
func (s *jwtService) DefaultTTL() time.Duration {
	return s.ttl
}

// LoginTTL returns the lifetime for login-issued tokens.
func (s *jwtService) LoginTTL() time.Duration {
	return s.loginTTL
}
