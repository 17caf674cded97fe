package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

var (
	// ErrInvalidConfig возвращается при некорректных значениях конфигурации
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса записи в барбершоп
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Redis    RedisConfig    `toml:"redis"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	Admin    AdminConfig    `toml:"admin"`
	CORS     CORSConfig     `toml:"cors"`
}

// ServerConfig HTTP сервер. Таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig хранилище сессий администратора. Пустой addr - сессии в памяти процесса
type RedisConfig struct {
	Addr      string `toml:"addr"`
	Password  string `toml:"password"`
	DB        int    `toml:"db"`
	KeyPrefix string `toml:"key_prefix"`
}

// LogsConfig логирование
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig рабочий день по умолчанию, пока администратор не сохранил свой
type ScheduleConfig struct {
	OpeningTime     string `toml:"opening_time"`
	ClosingTime     string `toml:"closing_time"`
	IntervalMinutes int    `toml:"interval_minutes"`
	LeadTimeMinutes int    `toml:"lead_time_minutes"`
	Timezone        string `toml:"timezone"`
}

// Defaults значения для schedule.Service
func (c ScheduleConfig) Defaults() domain.ScheduleConfig {
	return domain.ScheduleConfig{
		OpeningTime:     types.TimeString(c.OpeningTime),
		ClosingTime:     types.TimeString(c.ClosingTime),
		IntervalMinutes: c.IntervalMinutes,
		LeadTimeMinutes: c.LeadTimeMinutes,
	}
}

// Location часовой пояс барбершопа
func (c ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %v", ErrInvalidConfig, c.Timezone, err)
	}
	return loc, nil
}

// AdminConfig доступ администратора
type AdminConfig struct {
	PasswordHash       string `toml:"password_hash"` // bcrypt
	SessionTTLMinutes  int    `toml:"session_ttl_minutes"`
	LoginRatePerMinute int    `toml:"login_rate_per_minute"`
	LoginBurst         int    `toml:"login_burst"`
}

// SessionTTL время жизни сессии
func (c AdminConfig) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// CORSConfig разрешенные источники браузерного клиента
type CORSConfig struct {
	AllowedOrigins []string `toml:"allowed_origins"`
	MaxAge         int      `toml:"max_age"`
}

// Load читает конфигурацию из TOML файла. Секреты переопределяются переменными окружения,
// .env рядом с бинарником подхватывается, если он есть
func Load(path string) (*Config, error) {
	// 1. .env необязателен
	_ = godotenv.Load()

	// 2. Значения по умолчанию, поверх них файл
	cfg := defaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}

	// 3. Окружение
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	// 4. Проверка
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения, без которых сервис не запустится
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Schedule.IntervalMinutes < domain.MinIntervalMinutes || c.Schedule.IntervalMinutes > domain.MaxIntervalMinutes {
		return fmt.Errorf("%w: schedule.interval_minutes %d", ErrInvalidConfig, c.Schedule.IntervalMinutes)
	}
	open, err := types.NewTimeStringFromString(c.Schedule.OpeningTime)
	if err != nil {
		return fmt.Errorf("%w: schedule.opening_time: %v", ErrInvalidConfig, err)
	}
	closing, err := types.NewTimeStringFromString(c.Schedule.ClosingTime)
	if err != nil {
		return fmt.Errorf("%w: schedule.closing_time: %v", ErrInvalidConfig, err)
	}
	if !open.IsBefore(closing) {
		return fmt.Errorf("%w: schedule.opening_time must be before closing_time", ErrInvalidConfig)
	}
	c.Schedule.OpeningTime, c.Schedule.ClosingTime = open.String(), closing.String()

	if c.Schedule.LeadTimeMinutes < 0 || c.Schedule.LeadTimeMinutes > domain.MaxLeadTimeMinutes {
		return fmt.Errorf("%w: schedule.lead_time_minutes %d", ErrInvalidConfig, c.Schedule.LeadTimeMinutes)
	}
	if _, err := c.Schedule.Location(); err != nil {
		return err
	}
	if c.Admin.SessionTTLMinutes <= 0 {
		return fmt.Errorf("%w: admin.session_ttl_minutes %d", ErrInvalidConfig, c.Admin.SessionTTLMinutes)
	}
	return nil
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			AutoMigrate:     true,
		},
		Redis: RedisConfig{KeyPrefix: "barber:admin:session"},
		Logs:  LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "barber_booking",
		},
		Schedule: ScheduleConfig{
			OpeningTime:     domain.DefaultOpeningTime,
			ClosingTime:     domain.DefaultClosingTime,
			IntervalMinutes: domain.DefaultIntervalMinutes,
			LeadTimeMinutes: int(domain.DefaultLeadTime / time.Minute),
			Timezone:        domain.DefaultTimezone,
		},
		Admin: AdminConfig{
			SessionTTLMinutes:  int(domain.DefaultAdminSessionTTL / time.Minute),
			LoginRatePerMinute: 5,
			LoginBurst:         3,
		},
		CORS: CORSConfig{MaxAge: 600},
	}
}

func applyEnv(cfg *Config) error {
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Host, "DB_HOST")
	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.Admin.PasswordHash, "ADMIN_PASSWORD_HASH")

	if raw, ok := os.LookupEnv("HTTP_PORT"); ok && raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%w: HTTP_PORT %q", ErrInvalidConfig, raw)
		}
		cfg.Server.HTTPPort = port
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}
