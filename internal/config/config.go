// Package config - загрузка конфигурации сервиса из TOML файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Stripe   StripeConfig   `toml:"stripe"`
	Booking  BookingConfig  `toml:"booking"`
	Admin    AdminConfig    `toml:"admin"`
}

// ServerConfig настройки HTTP сервера
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

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// StripeConfig настройки платежного шлюза Stripe Checkout
type StripeConfig struct {
	SecretKey  string `toml:"secret_key"`
	Currency   string `toml:"currency"`
	SuccessURL string `toml:"success_url"`
	CancelURL  string `toml:"cancel_url"`
}

// SessionConfig рабочее окно студии в config.toml
type SessionConfig struct {
	Name  string `toml:"name"`
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// BookingConfig параметры генерации слотов и удержания брони
type BookingConfig struct {
	BufferMinutes        int             `toml:"buffer_minutes"`
	HoldTTLMinutes       int             `toml:"hold_ttl_minutes"`
	SweepIntervalMinutes int             `toml:"sweep_interval_minutes"`
	Sessions             []SessionConfig `toml:"sessions"`
}

// AdminConfig настройки доступа к административным endpoint'ам
type AdminConfig struct {
	Token string `toml:"token"`
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SessionWindows конвертирует настройки сессий в доменные окна
func (c *Config) SessionWindows() ([]domain.SessionWindow, error) {
	windows := make([]domain.SessionWindow, 0, len(c.Booking.Sessions))
	for _, s := range c.Booking.Sessions {
		start, err := types.NewTimeStringFromString(s.Start)
		if err != nil {
			return nil, fmt.Errorf("config: session %q start: %w", s.Name, err)
		}
		end, err := types.NewTimeStringFromString(s.End)
		if err != nil {
			return nil, fmt.Errorf("config: session %q end: %w", s.Name, err)
		}
		if !start.IsBefore(end) {
			return nil, fmt.Errorf("config: session %q start %s is not before end %s", s.Name, s.Start, s.End)
		}
		windows = append(windows, domain.SessionWindow{Name: s.Name, Start: start, End: end})
	}
	return windows, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Booking.BufferMinutes == 0 {
		cfg.Booking.BufferMinutes = domain.DefaultBufferMinutes
	}
	if cfg.Booking.HoldTTLMinutes == 0 {
		cfg.Booking.HoldTTLMinutes = domain.DefaultHoldTTLMinutes
	}
	if cfg.Booking.SweepIntervalMinutes == 0 {
		cfg.Booking.SweepIntervalMinutes = cfg.Booking.HoldTTLMinutes
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Stripe.Currency == "" {
		cfg.Stripe.Currency = "myr"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Booking.BufferMinutes < domain.MinBufferMinutes || cfg.Booking.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("config: booking.buffer_minutes must be in [%d, %d]",
			domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	if cfg.Booking.HoldTTLMinutes < domain.MinHoldTTLMinutes || cfg.Booking.HoldTTLMinutes > domain.MaxHoldTTLMinutes {
		return fmt.Errorf("config: booking.hold_ttl_minutes must be in [%d, %d]",
			domain.MinHoldTTLMinutes, domain.MaxHoldTTLMinutes)
	}
	if len(cfg.Booking.Sessions) == 0 {
		return fmt.Errorf("config: at least one booking.sessions window is required")
	}
	if cfg.Admin.Token == "" {
		return fmt.Errorf("config: admin.token is required")
	}
	return nil
}
