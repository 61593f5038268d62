package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Log          LogConfig          `yaml:"log"`
	Reports      ReportsConfig      `yaml:"reports"`
	Scheduler    SchedulerConfig    `yaml:"scheduler"`
	Distribution DistributionConfig `yaml:"distribution"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// ReportsConfig controls which transactions feed period reports by default.
type ReportsConfig struct {
	IncludeUnapproved bool `yaml:"include_unapproved"`
}

// SchedulerConfig contains cron schedule settings (seconds field first)
type SchedulerConfig struct {
	AuditLedgers         string `yaml:"audit_ledgers"`
	PreviewDistributions string `yaml:"preview_distributions"`
	TroopWorkers         int    `yaml:"troop_workers"` // troops a job processes at once
}

// DefaultTroopWorkers is used when scheduler.troop_workers is unset.
const DefaultTroopWorkers = 4

// DistributionConfig contains deposit proposal settings
type DistributionConfig struct {
	MinimumDeposit string `yaml:"minimum_deposit"` // shares at or below this are not proposed
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Config from YAML bytes, applies environment overrides and validates it.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Reports
	if val := os.Getenv("REPORTS_INCLUDE_UNAPPROVED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			c.Reports.IncludeUnapproved = b
		}
	}

	// Distribution
	if val := os.Getenv("DISTRIBUTION_MINIMUM_DEPOSIT"); val != "" {
		c.Distribution.MinimumDeposit = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid and fills scheduler and distribution defaults
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	// Scheduler defaults
	if c.Scheduler.AuditLedgers == "" {
		c.Scheduler.AuditLedgers = "0 0 2 * * *" // 2 AM UTC
	}
	if c.Scheduler.PreviewDistributions == "" {
		c.Scheduler.PreviewDistributions = "0 0 6 * * 1" // Mondays at 6 AM UTC
	}
	if c.Scheduler.TroopWorkers == 0 {
		c.Scheduler.TroopWorkers = DefaultTroopWorkers
	}
	if c.Scheduler.TroopWorkers < 0 {
		return fmt.Errorf("invalid scheduler troop workers: %d", c.Scheduler.TroopWorkers)
	}
	parser := cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	for name, spec := range map[string]string{
		"audit_ledgers":         c.Scheduler.AuditLedgers,
		"preview_distributions": c.Scheduler.PreviewDistributions,
	} {
		if _, err := parser.Parse(spec); err != nil {
			return fmt.Errorf("invalid scheduler.%s %q: %w", name, spec, err)
		}
	}

	// Distribution defaults
	if c.Distribution.MinimumDeposit == "" {
		c.Distribution.MinimumDeposit = "0.01"
	}
	minDeposit, err := decimal.NewFromString(c.Distribution.MinimumDeposit)
	if err != nil {
		return fmt.Errorf("invalid distribution minimum deposit %q: %w", c.Distribution.MinimumDeposit, err)
	}
	if minDeposit.IsNegative() {
		return fmt.Errorf("distribution minimum deposit must not be negative: %s", c.Distribution.MinimumDeposit)
	}

	return nil
}

// MinimumDeposit returns the validated distribution minimum.
func (c *Config) MinimumDeposit() decimal.Decimal {
	return decimal.RequireFromString(c.Distribution.MinimumDeposit)
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
