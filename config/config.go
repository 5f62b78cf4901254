// Package config loads application settings for tools built on this module.
//
// Settings come from a YAML file and may be overridden by STOREOPS_*
// environment variables, e.g. STOREOPS_LOGGING_LEVEL=debug.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/storeops/networking"
	"github.com/storeops/networking/hostnetwork"
	"github.com/storeops/networking/logging"
	"github.com/storeops/networking/mockup"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "STOREOPS"

// ErrInvalidRoute indicates a route that names both or neither of a fixture and an error.
var ErrInvalidRoute = errors.New("route must set exactly one of fixture or error")

// Route is one simulated response.
type Route struct {
	// Suffix is matched against the end of the request path.
	Suffix string `mapstructure:"suffix"`
	// Fixture names the fixture to answer with.
	Fixture string `mapstructure:"fixture"`
	// Error is the message of the error to fail with.
	Error string `mapstructure:"error"`
}

// FixturesConfig locates fixtures.
type FixturesConfig struct {
	// Dir is a directory of fixture files. Empty selects the embedded set.
	Dir string `mapstructure:"dir"`
}

// Config is the application configuration.
type Config struct {
	Namespace          string         `mapstructure:"namespace"`
	InsecureSkipVerify bool           `mapstructure:"insecure_skip_verify"`
	Fixtures           FixturesConfig `mapstructure:"fixtures"`
	Logging            logging.Config `mapstructure:"logging"`
	Routes             []Route        `mapstructure:"routes"`
}

// Load reads configuration from path. An empty path looks for mockup.yaml in
// the working directory and falls back to defaults when none exists; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("namespace", networking.DefaultNamespace)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", logging.FormatConsole)
	v.SetDefault("logging.output", logging.OutputStderr)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("mockup")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	for i, r := range cfg.Routes {
		if (r.Fixture == "") == (r.Error == "") {
			return nil, fmt.Errorf("%w: routes[%d] (suffix %q)", ErrInvalidRoute, i, r.Suffix)
		}
	}

	cfg.Logging.SDKConfig.Namespace = cfg.Namespace

	return &cfg, nil
}

// HostNetwork returns the hostnetwork configuration these settings describe.
// Credentials, metrics and the host call are left to the caller.
func (c *Config) HostNetwork(log *zap.Logger) hostnetwork.Config {
	return hostnetwork.Config{
		SDKConfig:          networking.RuntimeConfig{Namespace: c.Namespace},
		InsecureSkipVerify: c.InsecureSkipVerify,
		Logger:             log,
	}
}

// Register installs routes on n. Error routes fail with errors.New(Error).
func Register(n *mockup.Network, routes []Route) {
	for _, r := range routes {
		if r.Error != "" {
			n.SimulateError(r.Suffix, errors.New(r.Error))
			continue
		}
		n.SimulateResponse(r.Suffix, r.Fixture)
	}
}
