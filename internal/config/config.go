package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config keys settable via the config subcommand.
const (
	KeyModel       = "model"
	KeyChunkLength = "chunk-length"
)

// ErrInvalidKey indicates a config key outside the known set.
var ErrInvalidKey = errors.New("invalid config key")

// ErrInvalidValue indicates a config value that does not fit its key.
var ErrInvalidValue = errors.New("invalid config value")

// Config holds user defaults loaded from ~/.config/transcribe/config.toml.
// Zero fields mean "not configured"; callers apply their own defaults.
type Config struct {
	// Model is the default transcription model identifier.
	Model string `toml:"model,omitempty"`

	// ChunkLength is the default chunk length in seconds for long audio.
	ChunkLength int `toml:"chunk-length,omitempty"`
}

// Keys returns the known config keys in sorted order.
func Keys() []string {
	keys := []string{KeyModel, KeyChunkLength}
	sort.Strings(keys)
	return keys
}

// dir returns the configuration directory path.
// Uses XDG_CONFIG_HOME if set, otherwise ~/.config/transcribe.
func dir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "transcribe"), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "transcribe"), nil
}

// path returns the full path to the config file.
func path() (string, error) {
	d, err := dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(d, "config.toml"), nil
}

// Load reads the configuration file.
// Returns a zero Config if the file doesn't exist (not an error).
func Load() (Config, error) {
	var cfg Config

	p, err := path()
	if err != nil {
		return cfg, err
	}

	if _, err := toml.DecodeFile(p, &cfg); err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to parse config file %s: %w", p, err)
	}

	return cfg, nil
}

// Save writes a single key to the config file, preserving the other keys.
// Creates the config directory and file if they don't exist.
func Save(key, value string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}

	switch key {
	case KeyModel:
		cfg.Model = value
	case KeyChunkLength:
		n, convErr := strconv.Atoi(value)
		if convErr != nil || n <= 0 {
			return fmt.Errorf("%w: %s must be a positive integer, got %q",
				ErrInvalidValue, KeyChunkLength, value)
		}
		cfg.ChunkLength = n
	default:
		return fmt.Errorf("%w: %q (valid keys: %s)", ErrInvalidKey, key, strings.Join(Keys(), ", "))
	}

	return write(cfg)
}

// write renders the config as TOML, creating the directory as needed.
func write(cfg Config) error {
	p, err := path()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0750); err != nil { // #nosec G301 -- user config dir
		return fmt.Errorf("cannot create config directory: %w", err)
	}

	f, err := os.Create(p) // #nosec G304 -- config path is constructed from home dir
	if err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// Get reads a single value from the config file.
// Returns empty string if the key is not configured.
func Get(key string) (string, error) {
	cfg, err := Load()
	if err != nil {
		return "", err
	}

	switch key {
	case KeyModel:
		return cfg.Model, nil
	case KeyChunkLength:
		if cfg.ChunkLength == 0 {
			return "", nil
		}
		return strconv.Itoa(cfg.ChunkLength), nil
	default:
		return "", fmt.Errorf("%w: %q (valid keys: %s)", ErrInvalidKey, key, strings.Join(Keys(), ", "))
	}
}

// List returns all configured values as a map.
// Keys with zero values are omitted.
func List() (map[string]string, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	data := make(map[string]string)
	if cfg.Model != "" {
		data[KeyModel] = cfg.Model
	}
	if cfg.ChunkLength > 0 {
		data[KeyChunkLength] = strconv.Itoa(cfg.ChunkLength)
	}
	return data, nil
}

// Dir returns the configuration directory path (exported for testing).
func Dir() (string, error) {
	return dir()
}

// Path returns the config file path (exported for user-facing messages).
func Path() (string, error) {
	return path()
}
