package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix namespaces environment overrides, e.g. WALKBOX_SERVER_ADDRESS
const EnvPrefix = "WALKBOX"

// FileName is the config file searched in the working directory
const FileName = "walkbox"

// Config is the root configuration
type Config struct {
	Logger     LoggerConfig     `mapstructure:"logger"`
	Navigation NavigationConfig `mapstructure:"navigation"`
	Scene      SceneConfig      `mapstructure:"scene"`
	Audio      AudioConfig      `mapstructure:"audio"`
	Server     ServerConfig     `mapstructure:"server"`
}

// LoggerConfig configures the zap logger and its rotated file sink
type LoggerConfig struct {
	Level       string      `mapstructure:"level"`
	Format      string      `mapstructure:"format"`
	AddSource   bool        `mapstructure:"add_source"`
	ServiceName string      `mapstructure:"service_name"`
	LogFile     string      `mapstructure:"log_file"`
	MaxSize     int         `mapstructure:"max_size"`
	MaxBackups  int         `mapstructure:"max_backups"`
	MaxAge      int         `mapstructure:"max_age"`
	Compress    bool        `mapstructure:"compress"`
	Colors      ColorConfig `mapstructure:"colors"`
}

// ColorConfig names the console color per level
type ColorConfig struct {
	Debug  string `mapstructure:"debug"`
	Info   string `mapstructure:"info"`
	Warn   string `mapstructure:"warn"`
	Error  string `mapstructure:"error"`
	DPanic string `mapstructure:"dpanic"`
	Panic  string `mapstructure:"panic"`
	Fatal  string `mapstructure:"fatal"`
}

// NavigationConfig drives the agent loop and hover preview throttling
type NavigationConfig struct {
	TickRate       int     `mapstructure:"tick_rate"`       // Ticks per second
	AgentSpeed     float64 `mapstructure:"agent_speed"`     // World pixels per millisecond
	RecomputeTicks int     `mapstructure:"recompute_ticks"` // Minimum ticks between preview queries
	DirtyDistance  float64 `mapstructure:"dirty_distance"`  // Pointer travel forcing an immediate query
	DebugOverlay   bool    `mapstructure:"debug_overlay"`
}

// TickInterval converts TickRate to a ticker period
func (n NavigationConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(n.TickRate)
}

type SceneConfig struct {
	Name string `mapstructure:"name"`
}

type AudioConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	Volume  float64 `mapstructure:"volume"` // 0..1
}

// ServerConfig configures the websocket driver
type ServerConfig struct {
	Address      string        `mapstructure:"address"`
	PingInterval time.Duration `mapstructure:"ping_interval"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	MaxQueryRate float64       `mapstructure:"max_query_rate"` // Queries per second per session
	QueryBurst   int           `mapstructure:"query_burst"`
	ReadLimit    int64         `mapstructure:"read_limit"` // Bytes per client message
}

// SetDefaults registers every default on v
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "walkbox")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 7)
	v.SetDefault("logger.compress", false)
	v.SetDefault("logger.colors.debug", "cyan")
	v.SetDefault("logger.colors.info", "green")
	v.SetDefault("logger.colors.warn", "yellow")
	v.SetDefault("logger.colors.error", "red")
	v.SetDefault("logger.colors.dpanic", "magenta")
	v.SetDefault("logger.colors.panic", "magenta")
	v.SetDefault("logger.colors.fatal", "magenta")

	// -- Navigation --
	v.SetDefault("navigation.tick_rate", 90)
	v.SetDefault("navigation.agent_speed", 0.15)
	v.SetDefault("navigation.recompute_ticks", 3)
	v.SetDefault("navigation.dirty_distance", 40.0)
	v.SetDefault("navigation.debug_overlay", true)

	// -- Scene --
	v.SetDefault("scene.name", "notched-room")

	// -- Audio --
	v.SetDefault("audio.enabled", true)
	v.SetDefault("audio.volume", 0.5)

	// -- Server --
	v.SetDefault("server.address", "127.0.0.1:8080")
	v.SetDefault("server.ping_interval", "30s")
	v.SetDefault("server.write_timeout", "10s")
	v.SetDefault("server.max_query_rate", 60.0)
	v.SetDefault("server.query_burst", 10)
	v.SetDefault("server.read_limit", 4096)
}

// Default returns the configuration produced by SetDefaults alone
func Default() *Config {
	v := viper.New()
	SetDefaults(v)
	cfg, err := Load(v)
	if err != nil {
		panic(fmt.Sprintf("config: defaults invalid: %v", err))
	}
	return cfg
}

// Load unmarshals and validates v
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values
func (c *Config) Validate() error {
	var errs []error
	if c.Navigation.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("navigation.tick_rate must be positive, got %d", c.Navigation.TickRate))
	}
	if c.Navigation.AgentSpeed <= 0 {
		errs = append(errs, fmt.Errorf("navigation.agent_speed must be positive, got %g", c.Navigation.AgentSpeed))
	}
	if c.Navigation.RecomputeTicks < 0 {
		errs = append(errs, fmt.Errorf("navigation.recompute_ticks must not be negative, got %d", c.Navigation.RecomputeTicks))
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		errs = append(errs, fmt.Errorf("audio.volume must be within [0, 1], got %g", c.Audio.Volume))
	}
	if c.Server.Address == "" {
		errs = append(errs, errors.New("server.address is required"))
	}
	if c.Server.MaxQueryRate <= 0 {
		errs = append(errs, fmt.Errorf("server.max_query_rate must be positive, got %g", c.Server.MaxQueryRate))
	}
	if c.Server.QueryBurst < 1 {
		errs = append(errs, fmt.Errorf("server.query_burst must be at least 1, got %d", c.Server.QueryBurst))
	}
	if c.Server.PingInterval <= 0 {
		errs = append(errs, fmt.Errorf("server.ping_interval must be positive, got %s", c.Server.PingInterval))
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.write_timeout must be positive, got %s", c.Server.WriteTimeout))
	}
	if c.Server.ReadLimit <= 0 {
		errs = append(errs, fmt.Errorf("server.read_limit must be positive, got %d", c.Server.ReadLimit))
	}
	return errors.Join(errs...)
}
