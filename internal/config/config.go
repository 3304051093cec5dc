package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// ErrInvalidConfig возвращается при некорректных значениях конфигурации
var ErrInvalidConfig = errors.New("config: invalid value")

// Config конфигурация сервиса (config.toml)
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Redis        RedisConfig        `toml:"redis"`
	Kafka        KafkaConfig        `toml:"kafka"`
	Stripe       StripeConfig       `toml:"stripe"`
	Mail         MailConfig         `toml:"mail"`
	Booking      BookingConfig      `toml:"booking"`
	Availability AvailabilityConfig `toml:"availability"`
	SlotCache    SlotCacheConfig    `toml:"slot_cache"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type RedisConfig struct {
	Enabled             bool   `toml:"enabled"`
	Addr                string `toml:"addr"`
	Password            string `toml:"password"`
	DB                  int    `toml:"db"`
	WorkingHoursTTLSecs int    `toml:"working_hours_ttl_seconds"`
}

type KafkaConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type StripeConfig struct {
	Enabled   bool   `toml:"enabled"`
	SecretKey string `toml:"secret_key"`
}

type MailConfig struct {
	Enabled  bool   `toml:"enabled"`
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	Username string `toml:"username"`
	Password string `toml:"password"`
	From     string `toml:"from"`
}

type BookingConfig struct {
	// MoveAutoSubstitute при конфликте переноса подставляет следующий свободный слот
	// вместо ответа 409
	MoveAutoSubstitute bool `toml:"move_auto_substitute"`
}

type AvailabilityConfig struct {
	DayIntervalMinutes  int `toml:"day_interval_minutes"`
	TeamIntervalMinutes int `toml:"team_interval_minutes"`
	MaxRangeDays        int `toml:"max_range_days"`
}

type SlotCacheConfig struct {
	Enabled                bool   `toml:"enabled"`
	Schedule               string `toml:"schedule"`
	DaysAhead              int    `toml:"days_ahead"`
	ServiceDurationMinutes int    `toml:"service_duration_minutes"`
}

// Load читает конфигурацию из TOML файла
// Секреты можно переопределить переменными окружения (в том числе из .env)
func Load(path string) (*Config, error) {
	// .env не обязателен
	_ = godotenv.Load()

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{Path: "/metrics", ServiceName: "clinic_booking"},
		Redis:   RedisConfig{Addr: "localhost:6379", WorkingHoursTTLSecs: 300},
		Kafka:   KafkaConfig{Topic: "clinic.bookings"},
		Mail:    MailConfig{Port: 587},
		Availability: AvailabilityConfig{
			DayIntervalMinutes:  30,
			TeamIntervalMinutes: 15,
			MaxRangeDays:        62,
		},
		SlotCache: SlotCacheConfig{
			Schedule:               "0 3 * * *",
			DaysAhead:              14,
			ServiceDurationMinutes: 30,
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("STRIPE_SECRET_KEY"); v != "" {
		cfg.Stripe.SecretKey = v
	}
	if v := os.Getenv("SMTP_PASSWORD"); v != "" {
		cfg.Mail.Password = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort < 1 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Availability.DayIntervalMinutes <= 0 || c.Availability.TeamIntervalMinutes <= 0 {
		return fmt.Errorf("%w: availability intervals must be positive", ErrInvalidConfig)
	}
	if c.Availability.MaxRangeDays <= 0 {
		return fmt.Errorf("%w: availability.max_range_days must be positive", ErrInvalidConfig)
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("%w: kafka.brokers is required when kafka is enabled", ErrInvalidConfig)
	}
	if c.Stripe.Enabled && c.Stripe.SecretKey == "" {
		return fmt.Errorf("%w: stripe.secret_key is required when stripe is enabled", ErrInvalidConfig)
	}
	if c.Mail.Enabled && (c.Mail.Host == "" || c.Mail.From == "") {
		return fmt.Errorf("%w: mail.host and mail.from are required when mail is enabled", ErrInvalidConfig)
	}
	if c.SlotCache.Enabled && (c.SlotCache.DaysAhead <= 0 || c.SlotCache.ServiceDurationMinutes <= 0) {
		return fmt.Errorf("%w: slot_cache.days_ahead and slot_cache.service_duration_minutes must be positive", ErrInvalidConfig)
	}
	if c.SlotCache.Enabled && c.SlotCache.DaysAhead > c.Availability.MaxRangeDays {
		return fmt.Errorf("%w: slot_cache.days_ahead=%d exceeds availability.max_range_days=%d",
			ErrInvalidConfig, c.SlotCache.DaysAhead, c.Availability.MaxRangeDays)
	}
	return nil
}
