package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "diagnocare/internal/platform/errors"
)

const (
	DefaultAPIBaseURL = "http://localhost:8765"
	DefaultLang       = "fr"
	DefaultLogLevel   = "info"
)

type Config struct {
	APIBaseURL     string        `yaml:"api_base_url"`
	Lang           string        `yaml:"lang"`
	DataDir        string        `yaml:"data_dir"`
	LogLevel       string        `yaml:"log_level"`
	RequestTimeout time.Duration `yaml:"request_timeout"`

	DBPath  string `yaml:"-"`
	LogPath string `yaml:"-"`
}

// Overrides carries CLI flag values; empty fields are ignored.
type Overrides struct {
	ConfigPath string
	APIBaseURL string
	DataDir    string
}

// Load resolves configuration from defaults, an optional YAML file, a .env
// file in the working directory, DIAGNOCARE_* variables and finally flags.
func Load(o Overrides) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Config{
		APIBaseURL: DefaultAPIBaseURL,
		Lang:       DefaultLang,
		DataDir:    defaultDataDir(),
		LogLevel:   DefaultLogLevel,
	}
	if v := os.Getenv("DIAGNOCARE_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}

	path := o.ConfigPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(cfg.DataDir, "config.yaml")
	}
	if err := mergeFile(&cfg, path, explicit); err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)
	if o.APIBaseURL != "" {
		cfg.APIBaseURL = o.APIBaseURL
	}
	if o.DataDir != "" {
		cfg.DataDir = o.DataDir
	}
	return finalize(cfg)
}

// New builds a validated Config rooted at dataDir without reading any
// external source. Tests and the devserver use it directly.
func New(apiBaseURL, dataDir string) (Config, error) {
	return finalize(Config{
		APIBaseURL: apiBaseURL,
		Lang:       DefaultLang,
		DataDir:    dataDir,
		LogLevel:   DefaultLogLevel,
	})
}

func mergeFile(cfg *Config, path string, required bool) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DIAGNOCARE_API_URL"); v != "" {
		cfg.APIBaseURL = v
	}
	if v := os.Getenv("DIAGNOCARE_LANG"); v != "" {
		cfg.Lang = v
	}
	if v := os.Getenv("DIAGNOCARE_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DIAGNOCARE_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}

func finalize(cfg Config) (Config, error) {
	cfg.APIBaseURL = strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/")
	u, err := url.Parse(cfg.APIBaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return Config{}, fmt.Errorf("api base url %q must be an absolute http(s) url: %w", cfg.APIBaseURL, apperrors.ErrInvalidInput)
	}
	cfg.Lang = strings.ToLower(strings.TrimSpace(cfg.Lang))
	if cfg.Lang != "fr" && cfg.Lang != "en" {
		return Config{}, fmt.Errorf("lang %q must be fr or en: %w", cfg.Lang, apperrors.ErrInvalidInput)
	}
	if cfg.DataDir == "" {
		return Config{}, fmt.Errorf("data dir is required: %w", apperrors.ErrInvalidInput)
	}
	if cfg.RequestTimeout < 0 {
		return Config{}, fmt.Errorf("request timeout must not be negative: %w", apperrors.ErrInvalidInput)
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.DBPath = filepath.Join(cfg.DataDir, "diagnocare.db")
	cfg.LogPath = filepath.Join(cfg.DataDir, "diagnocare.log")
	return cfg, nil
}

func defaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, "diagnocare")
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		return filepath.Join(home, ".diagnocare")
	}
	return ".diagnocare"
}
