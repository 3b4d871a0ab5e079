package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "MIE_"

// Config holds runtime settings. Precedence, lowest first: defaults, YAML
// file, .env file, process environment.
type Config struct {
	LogLevel   string   `yaml:"log_level"`
	LogFormat  string   `yaml:"log_format"`
	Workers    int      `yaml:"workers"`
	OutputName string   `yaml:"output_name"`
	Extensions []string `yaml:"extensions"`
}

// SupportedExtensions are the input formats with a registered decoder
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}

func Default() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  "console",
		Workers:    1,
		OutputName: "output",
		Extensions: append([]string(nil), SupportedExtensions...),
	}
}

// Load builds a Config from defaults, the optional YAML file at path and
// the environment. A missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(envPrefix + "LOG_LEVEL"); ok {
		c.LogLevel = v
	}
	if v, ok := lookup(envPrefix + "LOG_FORMAT"); ok {
		c.LogFormat = v
	}
	if v, ok := lookup(envPrefix + "OUTPUT_NAME"); ok {
		c.OutputName = v
	}
	if v, ok := lookup(envPrefix + "WORKERS"); ok {
		workers, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %sWORKERS %q: %w", envPrefix, v, err)
		}
		c.Workers = workers
	}
	if v, ok := lookup(envPrefix + "EXTENSIONS"); ok {
		c.Extensions = splitList(v)
	}
	return nil
}

func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}

	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}

	if c.OutputName == "" || strings.ContainsAny(c.OutputName, `/\`) {
		return fmt.Errorf("invalid output name %q", c.OutputName)
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}

	return nil
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
