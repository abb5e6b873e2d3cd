package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Mode            string        `mapstructure:"mode"`
	LogLevel        string        `mapstructure:"log_level"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	RoomCodeLength  int           `mapstructure:"room_code_length"`
	MaxDatagramSize int           `mapstructure:"max_datagram_size"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	SweepInterval   time.Duration `mapstructure:"sweep_interval"`
	AdminAddr       string        `mapstructure:"admin_addr"`
	CreateLimit     int           `mapstructure:"create_limit"`
	CreateWindow    time.Duration `mapstructure:"create_window"`
}

// Addr is the UDP bind address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) Validate() error {
	var errs []error
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port out of range: %d", c.Port))
	}
	if c.RoomCodeLength <= 0 {
		errs = append(errs, fmt.Errorf("room_code_length must be positive: %d", c.RoomCodeLength))
	}
	if c.MaxDatagramSize <= 0 {
		errs = append(errs, fmt.Errorf("max_datagram_size must be positive: %d", c.MaxDatagramSize))
	}
	if c.IdleTimeout > 0 && c.SweepInterval <= 0 {
		errs = append(errs, errors.New("sweep_interval must be positive when idle_timeout is set"))
	}
	return errors.Join(errs...)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "release")
	v.SetDefault("log_level", "info")
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", 5000)
	v.SetDefault("room_code_length", 5)
	v.SetDefault("max_datagram_size", 1024)
	v.SetDefault("idle_timeout", "60s")
	v.SetDefault("sweep_interval", "10s")
	v.SetDefault("admin_addr", ":8080")
	v.SetDefault("create_limit", 5)
	v.SetDefault("create_window", "10s")
}

// Load reads config/config.<CONFIG_ENV>.yaml when present, then RELAY_* env overrides.
func Load() (*Config, error) {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	return LoadFile(fmt.Sprintf("config/config.%s.yaml", env))
}

func LoadFile(fileName string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(fileName)
	v.SetEnvPrefix("relay")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Str("module", "config").Str("file", fileName).Msg("config file not found, using defaults")
	} else {
		log.Info().Str("module", "config").Str("file", fileName).Msg("loaded config")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	log.Info().
		Str("module", "config").
		Str("mode", cfg.Mode).
		Str("addr", cfg.Addr()).
		Int("room_code_length", cfg.RoomCodeLength).
		Str("admin", cfg.AdminAddr).
		Msg("config ready")
	return &cfg, nil
}
