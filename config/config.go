// Package config loads rmscribe settings from a YAML file and the
// environment.
package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"time"

	"github.com/juruen/rmscribe/log"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	appName     = "rmscribe"
	defaultFile = "config.yaml"

	EnvConfig     = "RMSCRIBE_CONFIG"
	EnvModelURL   = "RMSCRIBE_MODEL_URL"
	EnvModelToken = "RMSCRIBE_MODEL_TOKEN"
	EnvModelHMAC  = "RMSCRIBE_MODEL_HMAC"
	EnvStyles     = "RMSCRIBE_STYLES"
)

type Model struct {
	Endpoint    string        `yaml:"endpoint"`
	Token       string        `yaml:"token,omitempty"`
	HMACKey     string        `yaml:"hmac_key,omitempty"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxInFlight int64         `yaml:"max_in_flight"`
}

type Render struct {
	Align   bool `yaml:"align"`
	Denoise bool `yaml:"denoise"`
}

type Config struct {
	Model  Model  `yaml:"model"`
	Styles string `yaml:"styles"`
	Render Render `yaml:"render"`
	Listen string `yaml:"listen"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Model: Model{
			Endpoint:    "http://localhost:8501",
			Timeout:     5 * time.Minute,
			MaxInFlight: 2,
		},
		Styles: defaultStylesDir(),
		Render: Render{Align: true, Denoise: true},
		Listen: "localhost:8080",
	}
}

// defaultStylesDir prefers the user cache dir and falls back to the home
// directory.
func defaultStylesDir() string {
	if cachedir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(cachedir, appName, "styles")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+appName, "styles")
	}
	return "styles"
}

// Path returns the config file location.
func Path() (string, error) {
	if p := os.Getenv(EnvConfig); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "can't locate config dir")
	}
	return filepath.Join(dir, appName, defaultFile), nil
}

// Load reads the config file at Path, if present, and applies the
// environment overrides.
func Load() (Config, error) {
	path, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFile(path)
}

// LoadFile reads path over the defaults. A missing file is not an error.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	b, err := ioutil.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		log.Trace.Printf("config %s not found, using defaults", path)
	case err != nil:
		return cfg, errors.Wrap(err, "can't read config")
	default:
		if err := yaml.UnmarshalStrict(b, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "can't parse config %s", path)
		}
		log.Trace.Printf("config loaded: %s", path)
	}

	cfg.applyEnv()
	return cfg, cfg.validate()
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvModelURL); v != "" {
		c.Model.Endpoint = v
	}
	if v := os.Getenv(EnvModelToken); v != "" {
		c.Model.Token = v
	}
	if v := os.Getenv(EnvModelHMAC); v != "" {
		c.Model.HMACKey = v
	}
	if v := os.Getenv(EnvStyles); v != "" {
		c.Styles = v
	}
}

func (c Config) validate() error {
	if c.Model.Endpoint == "" {
		return errors.New("model endpoint is required")
	}
	if c.Model.Timeout < 0 {
		return errors.New("model timeout can't be negative")
	}
	return nil
}

// Save writes the config to path, creating its directory.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return ioutil.WriteFile(path, b, 0600)
}
