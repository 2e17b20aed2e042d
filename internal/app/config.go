package app

import (
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // time zones without a system database

	"cloudeng.io/errors"
	"gopkg.in/yaml.v3"

	"github.com/klabast/wb-services/feiertage/pkg/feiertage"
)

// Constants
const (
	DefaultAddr         = ":8080"
	DefaultRegion       = "DE-NW"
	DefaultTimezone     = "Europe/Berlin"
	DefaultAuthFile     = "auth.secret"
	DefaultYearsBack    = 1
	DefaultYearsForward = 2

	// Error messages
	ErrInvalidYear      = "Invalid year"
	ErrInvalidRegion    = "Invalid region"
	ErrInvalidMoment    = "Invalid date"
	ErrInvalidFormat    = "Invalid format"
	ErrInternalServer   = "Internal server error"
	ErrAdminDisabled    = "Admin endpoints disabled"
	ErrMethodNotAllowed = "Method not allowed"

	// Supported year range for queries and exports
	MinYear = 1583
	MaxYear = 2499

	// ICS constants
	ICSProductID = "-//Winterberg//Feiertagskalender//DE"
	ICSTimezone  = DefaultTimezone
	ICSDomain    = "feiertage.winterberg.de"

	// Environment variables
	EnvAddr     = "FEIERTAGE_ADDR"
	EnvRegion   = "FEIERTAGE_REGION"
	EnvTimezone = "FEIERTAGE_TIMEZONE"
	EnvAuthFile = "AUTH_FILE"
)

// Config is the service configuration. It is read from an optional YAML file,
// then overridden from the environment and finally from command line flags.
type Config struct {
	Addr     string `yaml:"addr"`
	Region   string `yaml:"region"`
	Timezone string `yaml:"timezone"`
	AuthFile string `yaml:"auth_file"`

	Subscribe struct {
		YearsBack    int `yaml:"years_back"`
		YearsForward int `yaml:"years_forward"`
	} `yaml:"subscribe"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	var cfg Config
	cfg.Addr = DefaultAddr
	cfg.Region = DefaultRegion
	cfg.Timezone = DefaultTimezone
	cfg.Subscribe.YearsBack = DefaultYearsBack
	cfg.Subscribe.YearsForward = DefaultYearsForward
	return cfg
}

// LoadConfig reads the YAML file at path on top of the defaults, if path is
// not empty, and applies environment overrides.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func (cfg *Config) applyEnv(getenv func(string) string) {
	for env, field := range map[string]*string{
		EnvAddr:     &cfg.Addr,
		EnvRegion:   &cfg.Region,
		EnvTimezone: &cfg.Timezone,
		EnvAuthFile: &cfg.AuthFile,
	} {
		if v := strings.TrimSpace(getenv(env)); v != "" {
			*field = v
		}
	}
}

// Validate reports every invalid setting.
func (cfg Config) Validate() error {
	errs := &errors.M{}
	if cfg.Addr == "" {
		errs.Append(fmt.Errorf("addr must not be empty"))
	}
	if _, err := feiertage.ParseRegion(cfg.Region); err != nil {
		errs.Append(fmt.Errorf("region: %w", err))
	}
	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		errs.Append(fmt.Errorf("timezone: %w", err))
	}
	if cfg.Subscribe.YearsBack < 0 || cfg.Subscribe.YearsForward < 0 {
		errs.Append(fmt.Errorf("subscribe: years_back and years_forward must not be negative"))
	}
	return errs.Err()
}

// DefaultRegionValue returns the parsed default region.
func (cfg Config) DefaultRegionValue() (feiertage.Region, error) {
	return feiertage.ParseRegion(cfg.Region)
}

// Location returns the configured time zone.
func (cfg Config) Location() (*time.Location, error) {
	return time.LoadLocation(cfg.Timezone)
}
