package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"friendlocator/internal/domain/constants"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"
	defaultDedupeTTL          = 24 * time.Hour
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP HTTPConfig `json:"http" yaml:"http"`

	// Worker is the HTTP surface of the fan-out binary
	Worker HTTPConfig `json:"worker" yaml:"worker"`

	// Firebase configuration shared by the store, push delivery and token verification
	Firebase *FirebaseConfig `json:"firebase" yaml:"firebase"`

	// Store selects the document store driver
	Store *StoreConfig `json:"store" yaml:"store"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// PubSub configuration for document event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Redis is optional. Without an address the scheduler uses a local lock and
	// event deduplication is disabled.
	Redis *RedisConfig `json:"redis" yaml:"redis"`
}

type HTTPConfig struct {
	Port               int    `json:"port" yaml:"port"`
	MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
	Timeouts           struct {
		ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
		ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
		WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
		IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
	} `json:"timeouts" yaml:"timeouts"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// FirebaseConfig defines the Firebase project the services talk to
type FirebaseConfig struct {
	ProjectID       string `json:"projectId" yaml:"projectId"`
	CredentialsPath string `json:"credentialsPath" yaml:"credentialsPath"`
}

// StoreConfig defines which document store backs the repositories
type StoreConfig struct {
	// Driver is "firestore" or "memory"
	Driver string `json:"driver" yaml:"driver"`
}

// AuthConfig defines how bearer tokens are verified
type AuthConfig struct {
	// Provider is "firebase" for Firebase ID tokens or "jwt" for HS256 development tokens
	Provider  string `json:"provider" yaml:"provider"`
	JWTSecret string `json:"jwtSecret" yaml:"jwtSecret"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP, "google" for Google Pub/Sub, empty to disable
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// PushAudience is the expected OIDC audience of push and job requests. Empty derives
	// it from the request URL.
	PushAudience string `json:"pushAudience" yaml:"pushAudience"`
}

// RedisConfig defines the optional Redis connection
type RedisConfig struct {
	Addr      string        `json:"addr" yaml:"addr"`
	Password  string        `json:"password" yaml:"password"`
	DB        int           `json:"db" yaml:"db"`
	DedupeTTL time.Duration `json:"dedupeTtl" yaml:"dedupeTtl"`
}

// Enabled reports whether a Redis address is configured.
func (c *RedisConfig) Enabled() bool {
	return c != nil && strings.TrimSpace(c.Addr) != ""
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
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

	configFile, found := findConfigFile(searchPaths, currEnv+".yaml")
	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Environment variables override the file. FIREBASE_PROJECTID -> firebase.projectId
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

func findConfigFile(searchPaths []string, name string) (string, bool) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, name)
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

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if strings.TrimSpace(c.Worker.MaxRequestBodySize) == "" {
		c.Worker.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Firebase == nil {
		c.Firebase = &FirebaseConfig{}
	}
	if c.Store == nil {
		c.Store = &StoreConfig{}
	}
	if c.Store.Driver == "" {
		c.Store.Driver = constants.StoreDriverFirestore
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.Provider == "" {
		c.Auth.Provider = constants.AuthProviderFirebase
	}
	if c.PubSub == nil {
		c.PubSub = &PubSubConfig{}
	}
	if c.Redis == nil {
		c.Redis = &RedisConfig{}
	}
	if c.Redis.DedupeTTL <= 0 {
		c.Redis.DedupeTTL = defaultDedupeTTL
	}
}

// Validate rejects combinations the services cannot start with.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case constants.StoreDriverFirestore:
		if c.Firebase.ProjectID == "" {
			return errors.New("firebase.projectId is required for the firestore store driver")
		}
	case constants.StoreDriverMemory:
	default:
		return errors.Errorf("unsupported store driver: %s", c.Store.Driver)
	}

	switch c.Auth.Provider {
	case constants.AuthProviderFirebase:
	case constants.AuthProviderJWT:
		if c.Auth.JWTSecret == "" {
			return errors.New("auth.jwtSecret is required for the jwt auth provider")
		}
	default:
		return errors.Errorf("unsupported auth provider: %s", c.Auth.Provider)
	}

	switch c.PubSub.Provider {
	case "":
	case constants.PubSubProviderGoogle:
		if c.PubSub.ProjectID == "" || c.PubSub.TopicID == "" {
			return errors.New("pubsub.projectId and pubsub.topicId are required for the google provider")
		}
	case constants.PubSubProviderLocal:
		if c.PubSub.LocalEndpoint == "" {
			return errors.New("pubsub.localEndpoint is required for the local provider")
		}
	default:
		return errors.Errorf("unsupported pubsub provider: %s", c.PubSub.Provider)
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		matched, next, ok := findExistingSegment(current, segment)
		if !ok {
			canonical = append(canonical, segment)
			current = nil

			continue
		}
		canonical = append(canonical, matched)
		current = next
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
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
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			normalized.WriteRune(unicode.ToLower(r))
		}
	}

	return normalized.String()
}
