package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultTokenAlgorithm     = "HS256"
	defaultTokenTTL           = 7 * 24 * time.Hour
	defaultPasswordMinLength  = 8
	defaultPasswordMaxLength  = 72
	defaultSlowQueryThreshold = 200 * time.Millisecond

	// EnvProduction is the env.env value that enables strict secret checks.
	EnvProduction = "production"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Database *DatabaseConfig `json:"database" yaml:"database"`

	SecretKey struct {
		Access string `json:"access" yaml:"access"`
	} `json:"secretKey" yaml:"secretKey"`

	Token *TokenConfig `json:"token" yaml:"token"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordPolicy *PasswordPolicyConfig `json:"passwordPolicy" yaml:"passwordPolicy"`
}

// DatabaseConfig controls schema management at startup.
type DatabaseConfig struct {
	AutoMigrate        bool          `json:"autoMigrate" yaml:"autoMigrate"`
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

// TokenConfig defines how identity tokens are signed and how long they live.
// Leeway is added on both sides of the exp/iat checks to absorb clock skew
// between hosts; it defaults to zero.
type TokenConfig struct {
	Algorithm string        `json:"algorithm" yaml:"algorithm"`
	TTL       time.Duration `json:"ttl" yaml:"ttl"`
	LoginTTL  time.Duration `json:"loginTTL" yaml:"loginTTL"`
	Leeway    time.Duration `json:"leeway" yaml:"leeway"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost int `json:"bcryptCost" yaml:"bcryptCost"`
}

// PasswordPolicyConfig bounds accepted password length, counted in characters
// before the hasher's byte truncation.
type PasswordPolicyConfig struct {
	MinLength int `json:"minLength" yaml:"minLength"`
	MaxLength int `json:"maxLength" yaml:"maxLength"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// IsProduction reports whether the deployment runs with production settings.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env.Env), EnvProduction)
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	configFile, found := findConfigFile(currEnv, searchPaths)
	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment overrides, e.g. SECRETKEY_ACCESS -> secretKey.access.
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(currEnv string, searchPaths []string) (string, bool) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	return cfg, nil
}

// ApplyDefaults fills optional sections so that consumers never see nil.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}

	if c.Database == nil {
		c.Database = &DatabaseConfig{}
	}
	if c.Database.SlowQueryThreshold <= 0 {
		c.Database.SlowQueryThreshold = defaultSlowQueryThreshold
	}

	if c.Token == nil {
		c.Token = &TokenConfig{}
	}
	if strings.TrimSpace(c.Token.Algorithm) == "" {
		c.Token.Algorithm = defaultTokenAlgorithm
	}
	if c.Token.TTL <= 0 {
		c.Token.TTL = defaultTokenTTL
	}
	if c.Token.LoginTTL <= 0 {
		c.Token.LoginTTL = c.Token.TTL
	}
	if c.Token.Leeway < 0 {
		c.Token.Leeway = 0
	}

	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}

	if c.PasswordPolicy == nil {
		c.PasswordPolicy = &PasswordPolicyConfig{}
	}
	if c.PasswordPolicy.MinLength <= 0 {
		c.PasswordPolicy.MinLength = defaultPasswordMinLength
	}
	if c.PasswordPolicy.MaxLength <= 0 {
		c.PasswordPolicy.MaxLength = defaultPasswordMaxLength
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}
// until the first index without a host or port.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
