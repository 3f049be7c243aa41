package transcoder

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	ftime "github.com/viant/tagly/format/time"
	"github.com/viant/transcoder/types"
	"gopkg.in/yaml.v3"
)

// Config represents file based mapper configuration
type Config struct {
	Tracing          bool   `toml:"tracing" yaml:"tracing"`
	AccessUnexported bool   `toml:"accessUnexported" yaml:"accessUnexported"`
	TimeLayout       string `toml:"timeLayout" yaml:"timeLayout"`
	//DateFormat is java style date format, i.e. yyyy-MM-dd, it takes precedence over TimeLayout
	DateFormat     string `toml:"dateFormat" yaml:"dateFormat"`
	UnmatchedAsNil bool   `toml:"unmatchedAsNil" yaml:"unmatchedAsNil"`
	//Immutables lists registered type names passed through without copying
	Immutables []string `toml:"immutables" yaml:"immutables"`
	LogLevel   string   `toml:"logLevel" yaml:"logLevel"`
}

// LoadConfig loads configuration from TOML or YAML file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg := &Config{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q: %s", ext, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// Options returns mapper options
func (c *Config) Options() ([]Option, error) {
	var ret []Option
	if c.Tracing {
		ret = append(ret, WithTracing(true))
	}
	if c.AccessUnexported {
		ret = append(ret, WithAccessUnexported(true))
	}
	if c.TimeLayout != "" {
		ret = append(ret, WithTimeLayout(c.TimeLayout))
	}
	if c.DateFormat != "" {
		ret = append(ret, WithTimeLayout(ftime.DateFormatToTimeLayout(c.DateFormat)))
	}
	if c.UnmatchedAsNil {
		ret = append(ret, WithUnmatchedAsNil())
	}
	for _, name := range c.Immutables {
		rType, ok := types.Lookup(name)
		if !ok {
			return nil, fmt.Errorf("unknown immutable type: %v", name)
		}
		ret = append(ret, WithImmutables(rType))
	}
	if c.LogLevel != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
			return nil, fmt.Errorf("invalid log level %v: %w", c.LogLevel, err)
		}
		ret = append(ret, WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))))
	}
	return ret, nil
}
