// Package config loads the server configuration file.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/solardome/preclear-demo/internal/store"
)

type Config struct {
	Server     Server `yaml:"server"`
	MaxReports int    `yaml:"max_reports"`
	// PolicyPath points at a scoring policy; empty uses the built-in demo policy.
	PolicyPath string `yaml:"policy_path"`
	// Seed fixes the random source. Zero draws a fresh seed per process.
	Seed         uint64 `yaml:"seed"`
	StaticDir    string `yaml:"static_dir"`
	LogoPath     string `yaml:"logo_path"`
	CloudDemoURL string `yaml:"cloud_demo_url"`
	Log          Log    `yaml:"log"`
}

type Server struct {
	Addr                string        `yaml:"addr"`
	ReadHeaderTimeout   time.Duration `yaml:"read_header_timeout"`
	ShutdownTimeout     time.Duration `yaml:"shutdown_timeout"`
	MaxUploadBytes      int64         `yaml:"max_upload_bytes"`
	UploadRatePerMinute int           `yaml:"upload_rate_per_minute"`
	UploadBurst         int           `yaml:"upload_burst"`
}

type Log struct {
	Level  string `yaml:"level"`
	RunLog string `yaml:"run_log"`
}

func Default() Config {
	return Config{
		Server: Server{
			Addr:                ":8000",
			ReadHeaderTimeout:   5 * time.Second,
			ShutdownTimeout:     10 * time.Second,
			MaxUploadBytes:      32 << 20,
			UploadRatePerMinute: 60,
			UploadBurst:         10,
		},
		MaxReports: store.DefaultCapacity,
		StaticDir:  "static",
		Log:        Log{Level: "info"},
	}
}

// Load overlays the YAML file at path onto Default. Unknown keys are errors.
// An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "read config %s", path)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, errors.Wrapf(err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []string
	if strings.TrimSpace(c.Server.Addr) == "" {
		problems = append(problems, "server.addr must not be empty")
	}
	if c.MaxReports <= 0 {
		problems = append(problems, "max_reports must be > 0")
	}
	if c.Server.MaxUploadBytes <= 0 {
		problems = append(problems, "server.max_upload_bytes must be > 0")
	}
	if c.Server.UploadRatePerMinute < 0 || c.Server.UploadBurst < 0 {
		problems = append(problems, "server upload rate and burst must be >= 0")
	}
	if c.Server.ReadHeaderTimeout < 0 || c.Server.ShutdownTimeout < 0 {
		problems = append(problems, "server timeouts must be >= 0")
	}
	if len(problems) > 0 {
		return errors.Newf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (c Config) String() string {
	return fmt.Sprintf("addr=%s max_reports=%d policy=%q static_dir=%q seeded=%t", c.Server.Addr, c.MaxReports, c.PolicyPath, c.StaticDir, c.Seed != 0)
}
