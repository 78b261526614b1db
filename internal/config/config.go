package config

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata" // зоны для booking.timezone без системной базы

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// ErrInvalidConfig возвращается, когда значения конфигурации вне допустимых границ
var ErrInvalidConfig = errors.New("invalid config")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Auth     AuthConfig     `toml:"auth"`
	Redis    RedisConfig    `toml:"redis"`
	Booking  BookingConfig  `toml:"booking"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
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

// LogsConfig настройки логгера
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// AuthConfig настройки проверки JWT
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret"`
}

// RedisConfig настройки кэша справочников
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
	TTL      int    `toml:"ttl"` // секунды
}

// CacheTTL время жизни записей кэша
func (r RedisConfig) CacheTTL() time.Duration {
	return time.Duration(r.TTL) * time.Second
}

// BookingConfig правила бронирования
type BookingConfig struct {
	Timezone          string `toml:"timezone"`
	OpeningHour       int    `toml:"opening_hour"`
	ClosingHour       int    `toml:"closing_hour"`
	MaxActiveBookings int    `toml:"max_active_bookings"`
}

// Policy собирает доменную политику бронирования
func (b BookingConfig) Policy() (domain.Policy, error) {
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return domain.Policy{}, fmt.Errorf("%w: booking.timezone %q: %v", ErrInvalidConfig, b.Timezone, err)
	}
	return domain.Policy{
		Location:          loc,
		OpeningHour:       b.OpeningHour,
		ClosingHour:       b.ClosingHour,
		MaxActiveBookings: b.MaxActiveBookings,
	}, nil
}

// Load читает конфигурацию из TOML файла, применяет значения по умолчанию,
// переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
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
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "barber_booking",
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "barber",
			TTL:    300,
		},
		Booking: BookingConfig{
			Timezone:          domain.DefaultTimezone,
			OpeningHour:       domain.DefaultOpeningHour,
			ClosingHour:       domain.DefaultClosingHour,
			MaxActiveBookings: domain.DefaultMaxActiveBookings,
		},
	}
}

// applyEnv переопределяет секреты из окружения
func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
}

// Validate проверяет границы значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("%w: auth.jwt_secret is required (or JWT_SECRET)", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.TTL <= 0 {
		return fmt.Errorf("%w: redis.ttl must be positive", ErrInvalidConfig)
	}

	b := c.Booking
	if b.OpeningHour < 0 || b.ClosingHour > 23 || b.OpeningHour >= b.ClosingHour {
		return fmt.Errorf("%w: booking hours must satisfy 0 <= opening_hour < closing_hour <= 23", ErrInvalidConfig)
	}
	if b.MaxActiveBookings <= 0 {
		return fmt.Errorf("%w: booking.max_active_bookings must be positive", ErrInvalidConfig)
	}
	if _, err := b.Policy(); err != nil {
		return err
	}
	return nil
}
