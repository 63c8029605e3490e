package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. GEIGER_DEVICE_BASE_URL.
const EnvPrefix = "GEIGER"

// Config is the console's runtime configuration.
type Config struct {
	Port     string
	LogLevel string
	DBPath   string

	Device    DeviceConfig
	Telemetry TelemetryConfig
	Heartbeat HeartbeatConfig
}

type DeviceConfig struct {
	BaseURL        string
	Mock           bool   // serve fixtures instead of talking to a device
	FixturesDir    string // used when Mock is set
	RequestTimeout time.Duration
}

type TelemetryConfig struct {
	PollInterval time.Duration
}

type HeartbeatConfig struct {
	Interval time.Duration
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("log_level", "info")
	v.SetDefault("db.path", "console.db")
	v.SetDefault("device.base_url", "http://192.168.4.1/api")
	v.SetDefault("device.mock", false)
	v.SetDefault("device.fixtures_dir", "fixtures")
	v.SetDefault("device.request_timeout", "5s")
	v.SetDefault("telemetry.poll_interval", "2s")
	v.SetDefault("heartbeat.interval", "2s")
}

// Load reads configs/config.yml (or the file at path when given), then .env,
// then GEIGER_* environment variables. A missing config file is not an error.
func Load(path string) (*Config, error) {
	// .env only fills variables that are not already set
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("configs") // configs/config.yml
		v.SetConfigName("config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port:     v.GetString("port"),
		LogLevel: strings.ToLower(v.GetString("log_level")),
		DBPath:   v.GetString("db.path"),
		Device: DeviceConfig{
			BaseURL:        strings.TrimRight(v.GetString("device.base_url"), "/"),
			Mock:           v.GetBool("device.mock"),
			FixturesDir:    v.GetString("device.fixtures_dir"),
			RequestTimeout: v.GetDuration("device.request_timeout"),
		},
		Telemetry: TelemetryConfig{PollInterval: v.GetDuration("telemetry.poll_interval")},
		Heartbeat: HeartbeatConfig{Interval: v.GetDuration("heartbeat.interval")},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if !c.Device.Mock && c.Device.BaseURL == "" {
		return errors.New("device.base_url is required unless device.mock is set")
	}
	if c.Telemetry.PollInterval <= 0 {
		return fmt.Errorf("telemetry.poll_interval must be positive, got %s", c.Telemetry.PollInterval)
	}
	if c.Heartbeat.Interval <= 0 {
		return fmt.Errorf("heartbeat.interval must be positive, got %s", c.Heartbeat.Interval)
	}
	return nil
}
