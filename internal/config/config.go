package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/TuralIslamli/beauty-center-app-sub000/internal/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	App        AppConfig        `yaml:"app"`
	Backend    BackendConfig    `yaml:"backend"`
	Session    SessionConfig    `yaml:"session"`
	Database   DatabaseConfig   `yaml:"database"`
	Exports    ExportConfig     `yaml:"exports"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
	Logging    LoggingConfig    `yaml:"logging"`
	Google     GoogleConfig     `yaml:"google"`
	Console    ConsoleConfig    `yaml:"console"`
}

type AppConfig struct {
	Name        string `yaml:"name"`
	Environment string `yaml:"environment"`
	Version     string `yaml:"version"`
}

// BackendConfig points the client at the clinic REST API.
type BackendConfig struct {
	BaseURL        string  `yaml:"base_url"`
	Timeout        int     `yaml:"timeout_seconds"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst"`
}

func (b BackendConfig) TimeoutDuration() time.Duration {
	if b.Timeout <= 0 {
		return 30 * time.Second
	}
	return time.Duration(b.Timeout) * time.Second
}

type SessionConfig struct {
	Redis      RedisConfig `yaml:"redis"`
	TTLSeconds int         `yaml:"ttl_seconds"`
}

func (s SessionConfig) TTL() time.Duration {
	if s.TTLSeconds <= 0 {
		return time.Duration(models.DefaultSessionTTL) * time.Second
	}
	return time.Duration(s.TTLSeconds) * time.Second
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type ExportConfig struct {
	Path string `yaml:"path"`
}

type MonitoringConfig struct {
	PrometheusEnabled bool `yaml:"prometheus_enabled"`
	PrometheusPort    int  `yaml:"prometheus_port"`
}

type LoggingConfig struct {
	Level    string `yaml:"level"`
	Format   string `yaml:"format"`
	Output   string `yaml:"output"`
	FilePath string `yaml:"file_path"`
}

type GoogleConfig struct {
	CredentialsFile       string `yaml:"credentials_file"`
	BookingsSpreadsheetID string `yaml:"bookings_spreadsheet_id"`
}

type ConsoleConfig struct {
	PageSize       int `yaml:"page_size"`
	DebounceMillis int `yaml:"debounce_millis"`
}

func (c ConsoleConfig) Debounce() time.Duration {
	if c.DebounceMillis <= 0 {
		return time.Duration(models.FilterDebounceMillis) * time.Millisecond
	}
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

func Load(configPath string) (*Config, error) {
	// .env отсутствует вне production, это не ошибка
	_ = godotenv.Load(".env")

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}

	// Предварительная замена переменных окружения в YAML
	expandedData := []byte(os.ExpandEnv(string(data)))

	var config Config
	if err := yaml.Unmarshal(expandedData, &config); err != nil {
		return nil, err
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return errors.New("backend base_url is required")
	}

	if c.Database.Path == "" {
		return errors.New("database path is required")
	}

	if c.Backend.RateLimitRPS < 0 {
		return errors.New("backend rate_limit_rps must not be negative")
	}

	return nil
}

func (c *Config) applyDefaults() {
	if c.App.Name == "" {
		c.App.Name = "beauty-center-admin"
	}
	if c.Backend.RateLimitBurst == 0 {
		c.Backend.RateLimitBurst = 5
	}
	if c.Monitoring.PrometheusEnabled && c.Monitoring.PrometheusPort == 0 {
		c.Monitoring.PrometheusPort = 9090
	}
	if c.Exports.Path == "" {
		c.Exports.Path = "exports"
	}
	if c.Console.PageSize == 0 {
		c.Console.PageSize = models.DefaultPageSize
	}
	if c.Console.DebounceMillis == 0 {
		c.Console.DebounceMillis = models.FilterDebounceMillis
	}
}
