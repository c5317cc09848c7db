package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Source     SourceConfig     `mapstructure:"source"`
	Targets    TargetsConfig    `mapstructure:"targets"`
	Sync       SyncConfig       `mapstructure:"sync"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"ssl_mode"`
}

// SourceConfig contains snapshot dataset settings
type SourceConfig struct {
	// SnapshotPath points at the CSV snapshot of booking events.
	SnapshotPath string `mapstructure:"snapshot_path"`
	// EpochAnchor is the anchor used by reservation pipelines that have
	// no successful watermark yet. Defaults to the first date present in
	// the snapshot dataset.
	EpochAnchor string `mapstructure:"epoch_anchor"`
}

// TargetsConfig contains the downstream service endpoints
type TargetsConfig struct {
	DatasourceURL  string        `mapstructure:"datasource_url"`
	DestinationURL string        `mapstructure:"destination_url"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// SyncConfig contains scheduler settings per pipeline
type SyncConfig struct {
	EventsInterval  time.Duration `mapstructure:"events_interval"`
	DailyInterval   time.Duration `mapstructure:"daily_interval"`
	MonthlyInterval time.Duration `mapstructure:"monthly_interval"`
	YearlyInterval  time.Duration `mapstructure:"yearly_interval"`
}

// MonitoringConfig contains monitoring and metrics settings
type MonitoringConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "15s")
	viper.SetDefault("server.idle_timeout", "60s")
	viper.SetDefault("server.shutdown_timeout", "30s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.database", "booking_sync")

	// Source defaults
	viper.SetDefault("source.snapshot_path", "snapshot_data.csv")
	// First date present in the snapshot dataset.
	viper.SetDefault("source.epoch_anchor", "2022-01-29T00:00:00Z")

	// Targets defaults
	viper.SetDefault("targets.request_timeout", "30s")

	// Sync defaults
	viper.SetDefault("sync.events_interval", "1m")
	viper.SetDefault("sync.daily_interval", "1m")
	viper.SetDefault("sync.monthly_interval", "5m")
	viper.SetDefault("sync.yearly_interval", "15m")

	// Monitoring defaults
	viper.SetDefault("monitoring.enabled", true)

	// Logging defaults
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.output_path", "stdout")
}

func validate(config *Config) error {
	if config.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if config.Source.SnapshotPath == "" {
		return fmt.Errorf("source.snapshot_path is required")
	}
	if _, err := config.Source.EpochAnchorTime(); err != nil {
		return fmt.Errorf("source.epoch_anchor is invalid: %w", err)
	}
	if config.Targets.DatasourceURL == "" {
		return fmt.Errorf("targets.datasource_url is required")
	}
	if config.Targets.DestinationURL == "" {
		return fmt.Errorf("targets.destination_url is required")
	}
	return nil
}

// EpochAnchorTime parses the configured epoch anchor timestamp.
func (c *SourceConfig) EpochAnchorTime() (time.Time, error) {
	return time.Parse(time.RFC3339, c.EpochAnchor)
}
