package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

var (
	// ErrReadConfig файл конфигурации не прочитан или не распарсен
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig значения конфигурации некорректны
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server      ServerConfig      `toml:"server"`
	Database    DatabaseConfig    `toml:"database"`
	Mongo       MongoConfig       `toml:"mongo"`
	Storage     StorageConfig     `toml:"storage"`
	Studio      StudioConfig      `toml:"studio"`
	Logs        LogsConfig        `toml:"logs"`
	Metrics     MetricsConfig     `toml:"metrics"`
	Enrollment  EnrollmentConfig  `toml:"enrollment"`
	Scheduler   SchedulerConfig   `toml:"scheduler"`
	Auth        AuthConfig        `toml:"auth"`
	UserService UserServiceConfig `toml:"user_service"`
}

// ServerConfig HTTP сервер, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig подключение к PostgreSQL
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
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// URL строка подключения для golang-migrate
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode)
}

// MongoConfig подключение к MongoDB (нужен replica set для транзакций)
type MongoConfig struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
	Timeout  int    `toml:"timeout"`
}

func (m MongoConfig) TimeoutDuration() time.Duration {
	return time.Duration(m.Timeout) * time.Second
}

// HallConfig зал, создаваемый при старте
type HallConfig struct {
	ID       int64  `toml:"id"`
	BranchID int64  `toml:"branch_id"`
	Name     string `toml:"name"`
	Capacity int    `toml:"capacity"`
}

// StorageConfig выбор бэкенда и начальные данные
type StorageConfig struct {
	Backend string       `toml:"backend"`
	Halls   []HallConfig `toml:"halls"`
}

// StudioConfig часы работы в UTC для сетки свободных слотов
type StudioConfig struct {
	OpenHour  int `toml:"open_hour"`
	CloseHour int `toml:"close_hour"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// EnrollmentConfig число попыток записи при конкурентном обновлении
type EnrollmentConfig struct {
	MaxAttempts int `toml:"max_attempts"`
}

// SchedulerConfig фоновое обновление статусов, timeout в секундах
type SchedulerConfig struct {
	Enabled bool   `toml:"enabled"`
	Spec    string `toml:"spec"`
	Timeout int    `toml:"timeout"`
}

func (s SchedulerConfig) TimeoutDuration() time.Duration {
	return time.Duration(s.Timeout) * time.Second
}

// AuthConfig пользователи с правами администратора студии
type AuthConfig struct {
	StaffIDs []int64 `toml:"staff_ids"`
}

// UserServiceConfig источник ролей пользователей; пустой url отключает интеграцию.
// Timeout в секундах.
type UserServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

func (u UserServiceConfig) TimeoutDuration() time.Duration {
	return time.Duration(u.Timeout) * time.Second
}

// Default значения по умолчанию
func Default() *Config {
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
			User:            "postgres",
			DBName:          "dance_studio",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017/?replicaSet=rs0",
			Database: "dance_studio",
			Timeout:  10,
		},
		Storage: StorageConfig{Backend: BackendPostgres},
		Studio:  StudioConfig{OpenHour: 9, CloseHour: 22},
		Logs:    LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			ServiceName: "dance_studio",
			Path:        "/metrics",
		},
		Enrollment: EnrollmentConfig{MaxAttempts: 3},
		Scheduler: SchedulerConfig{
			Spec:    "@every 1m",
			Timeout: 30,
		},
		UserService: UserServiceConfig{Timeout: 3},
	}
}

// Load читает TOML поверх значений по умолчанию и проверяет результат
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	return Parse(string(data))
}

// Parse разбирает TOML из строки
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Storage.Backend {
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case BackendMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			return fmt.Errorf("%w: mongo.uri and mongo.database are required", ErrInvalidConfig)
		}
	case BackendMemory:
	default:
		return fmt.Errorf("%w: unknown storage.backend %q", ErrInvalidConfig, c.Storage.Backend)
	}

	seen := make(map[int64]struct{}, len(c.Storage.Halls))
	for _, h := range c.Storage.Halls {
		if h.ID <= 0 || h.Capacity <= 0 || h.Name == "" {
			return fmt.Errorf("%w: hall %+v needs id, name and positive capacity", ErrInvalidConfig, h)
		}
		if _, dup := seen[h.ID]; dup {
			return fmt.Errorf("%w: duplicate hall id %d", ErrInvalidConfig, h.ID)
		}
		seen[h.ID] = struct{}{}
	}

	if c.Studio.OpenHour < 0 || c.Studio.CloseHour > 24 || c.Studio.OpenHour >= c.Studio.CloseHour {
		return fmt.Errorf("%w: studio hours %d..%d are invalid", ErrInvalidConfig, c.Studio.OpenHour, c.Studio.CloseHour)
	}
	if c.Enrollment.MaxAttempts < 1 {
		return fmt.Errorf("%w: enrollment.max_attempts must be at least 1", ErrInvalidConfig)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.UserService.URL != "" && c.UserService.Timeout <= 0 {
		return fmt.Errorf("%w: user_service.timeout must be positive", ErrInvalidConfig)
	}
	if c.Scheduler.Enabled && c.Scheduler.Spec == "" {
		return fmt.Errorf("%w: scheduler.spec is required when scheduler is enabled", ErrInvalidConfig)
	}
	return nil
}
