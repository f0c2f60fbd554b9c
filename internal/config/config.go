package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"framesnatch/internal/eventbus"
)

// Config represents the application configuration
type Config struct {
	Version   int        `toml:"version"`
	OutputDir string     `toml:"output_dir"` // default snapshot directory
	Sampling  Sampling   `toml:"sampling"`
	UISettings UISettings `toml:"ui"`
}

// Sampling holds frame-sampling defaults
type Sampling struct {
	SpacingSeconds int `toml:"spacing_seconds"` // seconds between retained frames
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageSize int `toml:"page_size"` // images per gallery page
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a new config service
func NewConfigService() ConfigService {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}

	// Create framesnatch config directory
	appDir := filepath.Join(configDir, "framesnatch")
	os.MkdirAll(appDir, 0755)

	return &configService{
		filePath: filepath.Join(appDir, "config.toml"),
	}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(bus eventbus.EventBus) ConfigService {
	cs := NewConfigService().(*configService)
	cs.bus = bus
	return cs
}

// Load loads the configuration from file
func (cs *configService) Load() (*Config, error) {
	// Return default config if file doesn't exist
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		cs.publishLoaded(cfg)
		return cfg, nil
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	cs.publishLoaded(cfg)
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	// Publish ConfigSaved event if bus is available
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	// Ensure config directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (cs *configService) publishLoaded(cfg *Config) {
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			OutputDir:      cfg.OutputDir,
			SpacingSeconds: cfg.Sampling.SpacingSeconds,
		})
	}
}

// applyDefaults fills in zero values left by older or hand-edited files
func (c *Config) applyDefaults() {
	if c.Sampling.SpacingSeconds <= 0 {
		c.Sampling.SpacingSeconds = 5
	}
	if c.UISettings.PageSize <= 0 {
		c.UISettings.PageSize = 10
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	// Try to get home directory for the default snapshot dir
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return &Config{
		Version:   1,
		OutputDir: filepath.Join(homeDir, "snapshots"),
		Sampling: Sampling{
			SpacingSeconds: 5,
		},
		UISettings: UISettings{
			PageSize: 10,
		},
	}
}
