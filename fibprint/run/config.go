package run

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Config holds fibprint's settings after all layers are applied.
type Config struct {
	Count      int  `toml:"count"`
	Start      int  `toml:"start"`
	Verbose    bool `toml:"verbose"`
	PrimeLimit int  `toml:"prime_limit"`
	CheckLimit int  `toml:"check_limit"`
	NoColor    bool `toml:"no_color"`
}

// DefaultConfig matches the original output: the first 80 labels, primes and self-check through 30.
func DefaultConfig() Config {
	return Config{
		Count:      80,
		PrimeLimit: 30,
		CheckLimit: 30,
	}
}

const (
	defaultConfigFile = "fibprint.toml"

	envConfig     = "FIBPRINT_CONFIG"
	envCount      = "FIBPRINT_COUNT"
	envStart      = "FIBPRINT_START"
	envVerbose    = "FIBPRINT_VERBOSE"
	envPrimeLimit = "FIBPRINT_PRIME_LIMIT"
	envCheckLimit = "FIBPRINT_CHECK_LIMIT"
	envNoColor    = "FIBPRINT_NO_COLOR"
)

var (
	errInvalidEnv       = errors.New("invalid environment value")
	errUnknownConfigKey = errors.New("unknown config key")
)

// loadConfig layers the config file and then the environment over the defaults.
// An empty path means the default file, which may be absent.
func loadConfig(path string, getEnv func(string) string, fileSys FileSystem) (Config, error) {
	cfg := DefaultConfig()

	err := decodeConfigFile(&cfg, path, fileSys)
	if err != nil {
		return Config{}, err
	}

	err = applyEnv(&cfg, getEnv)
	if err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func applyEnv(cfg *Config, getEnv func(string) string) error {
	for key, target := range map[string]*int{
		envCount:      &cfg.Count,
		envStart:      &cfg.Start,
		envPrimeLimit: &cfg.PrimeLimit,
		envCheckLimit: &cfg.CheckLimit,
	} {
		raw := getEnv(key)
		if raw == "" {
			continue
		}

		value, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", errInvalidEnv, key, raw, err)
		}

		*target = value
	}

	for key, target := range map[string]*bool{
		envVerbose: &cfg.Verbose,
		envNoColor: &cfg.NoColor,
	} {
		raw := getEnv(key)
		if raw == "" {
			continue
		}

		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s=%q: %w", errInvalidEnv, key, raw, err)
		}

		*target = value
	}

	return nil
}

func decodeConfigFile(cfg *Config, path string, fileSys FileSystem) error {
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}

	data, err := fileSys.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to read config: %w", err)
	}

	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w in %s: %v", errUnknownConfigKey, path, undecoded)
	}

	return nil
}
