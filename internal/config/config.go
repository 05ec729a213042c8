package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Global configuration structure.
type Global struct {
	DataPath string `mapstructure:"data_path" yaml:"data_path"`

	// HTTP server
	ListenAddr string  `mapstructure:"listen_addr" yaml:"listen_addr"`
	LogLevel   string  `mapstructure:"log_level" yaml:"log_level"`
	RateLimit  float64 `mapstructure:"rate_limit" yaml:"rate_limit"`
	CORS       bool    `mapstructure:"cors" yaml:"cors"`

	// Year slider bounds and default
	YearMin     int `mapstructure:"year_min" yaml:"year_min"`
	YearMax     int `mapstructure:"year_max" yaml:"year_max"`
	YearDefault int `mapstructure:"year_default" yaml:"year_default"`
	TopN        int `mapstructure:"top_n" yaml:"top_n"`

	// Chart rendering
	ChartWidth  int    `mapstructure:"chart_width" yaml:"chart_width"`
	ChartHeight int    `mapstructure:"chart_height" yaml:"chart_height"`
	OutDir      string `mapstructure:"out_dir" yaml:"out_dir"`
}

// Defaults returns the built-in configuration.
func Defaults() *Global {
	return &Global{
		DataPath:    "cause_of_deaths.csv",
		ListenAddr:  ":8080",
		LogLevel:    "info",
		RateLimit:   20,
		CORS:        true,
		YearMin:     1990,
		YearMax:     2019,
		YearDefault: 2000,
		TopN:        5,
		ChartWidth:  1024,
		ChartHeight: 600,
		OutDir:      ".",
	}
}

// Validate checks the values that other packages rely on.
func (c *Global) Validate() error {
	if c.DataPath == "" {
		return fmt.Errorf("data_path must be set")
	}
	if c.YearMin > c.YearMax {
		return fmt.Errorf("year_min %d is after year_max %d", c.YearMin, c.YearMax)
	}
	if c.YearDefault < c.YearMin || c.YearDefault > c.YearMax {
		return fmt.Errorf("year_default %d outside %d..%d", c.YearDefault, c.YearMin, c.YearMax)
	}
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be positive, got %d", c.TopN)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("chart size must be positive, got %dx%d", c.ChartWidth, c.ChartHeight)
	}
	return nil
}

// DefaultPath is ~/.deathreport/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".deathreport", "config.yaml"), nil
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.deathreport/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) (string, error) {
	path := cfgFile
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return "", err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("mkdir config dir: %w", err)
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", fmt.Errorf("write config: %w", err)
	}
	return path, nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. Flags are applied by the caller.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DEATHREPORT")
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("data_path", d.DataPath)
	v.SetDefault("listen_addr", d.ListenAddr)
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("rate_limit", d.RateLimit)
	v.SetDefault("cors", d.CORS)
	v.SetDefault("year_min", d.YearMin)
	v.SetDefault("year_max", d.YearMax)
	v.SetDefault("year_default", d.YearDefault)
	v.SetDefault("top_n", d.TopN)
	v.SetDefault("chart_width", d.ChartWidth)
	v.SetDefault("chart_height", d.ChartHeight)
	v.SetDefault("out_dir", d.OutDir)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".deathreport"))
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}
