package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/retrofolio/internal/sequencer"
)

const appName = "retrofolio"

// Config holds all application configuration
type Config struct {
	Content ContentConfig `mapstructure:"content"`
	Timing  TimingConfig  `mapstructure:"timing"`
	Sound   SoundConfig   `mapstructure:"sound"`
	Store   StoreConfig   `mapstructure:"store"`
	Server  ServerConfig  `mapstructure:"server"`
	Browser BrowserConfig `mapstructure:"browser"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ContentConfig points at an alternate sections file
type ContentConfig struct {
	File string `mapstructure:"file"` // Empty uses the embedded sections
}

// TimingConfig holds every animation delay in milliseconds
type TimingConfig struct {
	BaseSpeed  int `mapstructure:"base_speed"`
	JitterMax  int `mapstructure:"jitter_max"`
	LeadIn     int `mapstructure:"lead_in"`
	MorphDelay int `mapstructure:"morph_delay"`
	Settle     int `mapstructure:"settle"`
	RebootLine int `mapstructure:"reboot_line"`
	ResetPause int `mapstructure:"reset_pause"`
	ResetFinal int `mapstructure:"reset_final"`
	AbortDelay int `mapstructure:"abort_delay"`
}

// SoundConfig holds terminal bell settings
type SoundConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	MaxPerSecond int  `mapstructure:"max_per_second"` // Typing cue cap
}

// StoreConfig holds preference storage settings
type StoreConfig struct {
	Path string `mapstructure:"path"` // Empty keeps preferences in memory
}

// ServerConfig holds the HTTP rendition settings
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// BrowserConfig holds the command used by serve --open
type BrowserConfig struct {
	Command string   `mapstructure:"command"` // Empty uses the system default
	Args    []string `mapstructure:"args"`
}

// UIConfig holds TUI configuration
type UIConfig struct {
	Boot    bool `mapstructure:"boot"`    // Show the boot screen on first run
	Circuit bool `mapstructure:"circuit"` // Animate the background traces
	FPS     int  `mapstructure:"fps"`     // Circuit frame rate
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Timing: TimingConfig{
			BaseSpeed:  10,
			JitterMax:  15,
			LeadIn:     500,
			MorphDelay: 400,
			Settle:     300,
			RebootLine: 300,
			ResetPause: 800,
			ResetFinal: 2400,
			AbortDelay: 1000,
		},
		Sound: SoundConfig{
			Enabled:      true,
			MaxPerSecond: 8,
		},
		Store: StoreConfig{
			Path: defaultDataPath(),
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		UI: UIConfig{
			Boot:    true,
			Circuit: true,
			FPS:     20,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), appName+".log"),
			Level: "INFO",
		},
	}
}

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

// Sequencer converts the millisecond settings to flow timings
func (t TimingConfig) Sequencer() sequencer.Timings {
	return sequencer.Timings{
		LeadIn:     ms(t.LeadIn),
		MorphDelay: ms(t.MorphDelay),
		Settle:     ms(t.Settle),
		RebootLine: ms(t.RebootLine),
		ResetPause: ms(t.ResetPause),
		ResetFinal: ms(t.ResetFinal),
		AbortDelay: ms(t.AbortDelay),
	}
}

// Typing returns the typewriter base speed and jitter
func (t TimingConfig) Typing() (base, jitter time.Duration) {
	return ms(t.BaseSpeed), ms(t.JitterMax)
}

// Validate rejects settings the flows cannot run with
func (c *Config) Validate() error {
	t := c.Timing
	for name, v := range map[string]int{
		"base_speed": t.BaseSpeed, "jitter_max": t.JitterMax, "lead_in": t.LeadIn,
		"morph_delay": t.MorphDelay, "settle": t.Settle, "reboot_line": t.RebootLine,
		"reset_pause": t.ResetPause, "reset_final": t.ResetFinal, "abort_delay": t.AbortDelay,
	} {
		if v < 0 {
			return fmt.Errorf("timing.%s must not be negative, got %d", name, v)
		}
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	if c.UI.FPS <= 0 {
		return fmt.Errorf("ui.fps must be positive, got %d", c.UI.FPS)
	}
	return nil
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// DefaultConfigFile is where SaveConfig writes when no path is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// setDefaults registers every key so environment overrides reach Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("content.file", cfg.Content.File)

	v.SetDefault("timing.base_speed", cfg.Timing.BaseSpeed)
	v.SetDefault("timing.jitter_max", cfg.Timing.JitterMax)
	v.SetDefault("timing.lead_in", cfg.Timing.LeadIn)
	v.SetDefault("timing.morph_delay", cfg.Timing.MorphDelay)
	v.SetDefault("timing.settle", cfg.Timing.Settle)
	v.SetDefault("timing.reboot_line", cfg.Timing.RebootLine)
	v.SetDefault("timing.reset_pause", cfg.Timing.ResetPause)
	v.SetDefault("timing.reset_final", cfg.Timing.ResetFinal)
	v.SetDefault("timing.abort_delay", cfg.Timing.AbortDelay)

	v.SetDefault("sound.enabled", cfg.Sound.Enabled)
	v.SetDefault("sound.max_per_second", cfg.Sound.MaxPerSecond)

	v.SetDefault("store.path", cfg.Store.Path)

	v.SetDefault("server.host", cfg.Server.Host)
	v.SetDefault("server.port", cfg.Server.Port)

	v.SetDefault("browser.command", cfg.Browser.Command)
	v.SetDefault("browser.args", cfg.Browser.Args)

	v.SetDefault("ui.boot", cfg.UI.Boot)
	v.SetDefault("ui.circuit", cfg.UI.Circuit)
	v.SetDefault("ui.fps", cfg.UI.FPS)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// LoadConfig loads configuration from file and environment.
// An empty configFile searches the default config directory and ".".
func LoadConfig(configFile string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. RETROFOLIO_SERVER_PORT
	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes cfg as YAML to path (DefaultConfigFile when empty)
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	setDefaults(v, cfg)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
