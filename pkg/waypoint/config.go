package waypoint

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"

	"github.com/BrandonKowalski/waypoint/pkg/waypoint/constants"
)

// Config selects and tunes the location adapter.
//
// LoadConfig fills it from a TOML file and then from the environment, so an
// environment variable always wins over the file.
type Config struct {
	// Mode is "auto", "fragment" or "session". ENV: WAYPOINT_MODE
	Mode string `toml:"mode" env:"WAYPOINT_MODE"`
	// MaxCorrectionTurns bounds fragment correction, 0 for no bound.
	// ENV: WAYPOINT_MAX_CORRECTION_TURNS
	MaxCorrectionTurns int `toml:"max_correction_turns" env:"WAYPOINT_MAX_CORRECTION_TURNS"`
	// LogLevel for the application logger. ENV: WAYPOINT_LOG_LEVEL
	LogLevel string `toml:"log_level" env:"WAYPOINT_LOG_LEVEL"`
	// LogPath of the log file, empty for stderr only. ENV: WAYPOINT_LOG_PATH
	LogPath string `toml:"log_path" env:"WAYPOINT_LOG_PATH"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		Mode:               constants.DefaultMode,
		MaxCorrectionTurns: constants.DefaultMaxCorrectionTurns,
		LogLevel:           constants.DefaultLogLevel,
	}
}

// LoadConfig starts from DefaultConfig, applies the TOML file at path if path
// is not empty, then applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		md, err := toml.DecodeFile(path, &cfg)
		if err != nil {
			return Config{}, fmt.Errorf("waypoint: read config %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			GetLogger().Warn("ignoring unknown config keys", "path", path, "keys", fmt.Sprint(undecoded))
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("waypoint: read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports configuration values waypoint cannot act on.
func (c Config) Validate() error {
	switch c.Mode {
	case constants.ModeAuto, constants.ModeFragment, constants.ModeSession:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, c.Mode)
	}
	if c.MaxCorrectionTurns < 0 {
		return fmt.Errorf("waypoint: max_correction_turns must not be negative, got %d", c.MaxCorrectionTurns)
	}
	return nil
}
