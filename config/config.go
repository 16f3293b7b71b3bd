package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const defaultPath = "."

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port     int `json:"port" yaml:"port"`
		Timeouts struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	SecretKey struct {
		Access  string `json:"access" yaml:"access"`
		Refresh string `json:"refresh" yaml:"refresh"`
	} `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// Game tuning knobs for the shared progression economy.
	Game *GameConfig `json:"game" yaml:"game"`

	// Persistence configuration for the local snapshot slot.
	Persistence *PersistenceConfig `json:"persistence" yaml:"persistence"`

	// QRCode configuration for classroom join codes.
	QRCode *QRCodeConfig `json:"qrcode" yaml:"qrcode"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost  int `json:"bcryptCost" yaml:"bcryptCost"`
	MaxAccounts int `json:"maxAccounts" yaml:"maxAccounts"`
}

// GameConfig defines the tunable constants of the game economy.
type GameConfig struct {
	MaxEnergy            int           `json:"maxEnergy" yaml:"maxEnergy"`
	EnergyRefillInterval time.Duration `json:"energyRefillInterval" yaml:"energyRefillInterval"`
	IdleIncomeCap        time.Duration `json:"idleIncomeCap" yaml:"idleIncomeCap"`
	StartingCoins        int           `json:"startingCoins" yaml:"startingCoins"`
}

// PersistenceConfig defines the local snapshot slot and write coalescing.
type PersistenceConfig struct {
	// StorageKey versions the snapshot slot; bumping it discards all prior
	// snapshots on the next restore.
	StorageKey string `json:"storageKey" yaml:"storageKey"`

	// Path to the sqlite file backing the snapshot slot.
	Path string `json:"path" yaml:"path"`

	// SaveDir is the local bucket directory holding per-minigame save slots.
	SaveDir string `json:"saveDir" yaml:"saveDir"`

	// DebounceDelay is the quiet period before a scheduled snapshot write fires.
	DebounceDelay time.Duration `json:"debounceDelay" yaml:"debounceDelay"`
}

// QRCodeConfig defines QR code generation configuration
type QRCodeConfig struct {
	Size                 int    `json:"size" yaml:"size"`
	ErrorCorrectionLevel string `json:"errorCorrectionLevel" yaml:"errorCorrectionLevel"`
	BaseURL              string `json:"baseUrl" yaml:"baseUrl"`
}

const (
	defaultMaxEnergy            = 5
	defaultEnergyRefillInterval = 4 * time.Hour
	defaultIdleIncomeCap        = 24 * time.Hour
	defaultStartingCoins        = 100
	defaultMaxAccounts          = 500
	defaultStorageKey           = "tycoon.state.v3"
	defaultDebounceDelay        = 2 * time.Second
)

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
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: SECRETKEY_ACCESS -> secretKey.access (not secretkey.access)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults fills in the tuning knobs that were omitted from the config
// file so the rest of the code never has to guard against zero values.
func (cfg *Config) applyDefaults() {
	if cfg.Auth == nil {
		cfg.Auth = &AuthConfig{}
	}
	if cfg.Auth.MaxAccounts <= 0 {
		cfg.Auth.MaxAccounts = defaultMaxAccounts
	}

	if cfg.Game == nil {
		cfg.Game = &GameConfig{}
	}
	if cfg.Game.MaxEnergy <= 0 {
		cfg.Game.MaxEnergy = defaultMaxEnergy
	}
	if cfg.Game.EnergyRefillInterval <= 0 {
		cfg.Game.EnergyRefillInterval = defaultEnergyRefillInterval
	}
	if cfg.Game.IdleIncomeCap <= 0 {
		cfg.Game.IdleIncomeCap = defaultIdleIncomeCap
	}
	if cfg.Game.StartingCoins <= 0 {
		cfg.Game.StartingCoins = defaultStartingCoins
	}

	if cfg.Persistence == nil {
		cfg.Persistence = &PersistenceConfig{}
	}
	if cfg.Persistence.StorageKey == "" {
		cfg.Persistence.StorageKey = defaultStorageKey
	}
	if cfg.Persistence.Path == "" {
		cfg.Persistence.Path = "tycoon.db"
	}
	if cfg.Persistence.SaveDir == "" {
		cfg.Persistence.SaveDir = "saves"
	}
	if cfg.Persistence.DebounceDelay <= 0 {
		cfg.Persistence.DebounceDelay = defaultDebounceDelay
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
