package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config はアプリケーション全体の設定を表現します。
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Logger   LoggerConfig   `yaml:"logger"`
	Audit    AuditConfig    `yaml:"audit"`
}

// ServerConfig は gRPC サーバーに関する設定です。
type ServerConfig struct {
	ListenAddr string `yaml:"listen_addr" env:"GRPC_LISTEN_ADDR"`
}

// HTTPConfig は REST API サーバーに関する設定です。
type HTTPConfig struct {
	ListenAddr         string        `yaml:"listen_addr" env:"HTTP_LISTEN_ADDR"`
	ReadTimeout        time.Duration `yaml:"-"`
	WriteTimeout       time.Duration `yaml:"-"`
	ShutdownTimeout    time.Duration `yaml:"-"`
	ReadTimeoutRaw     string        `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeoutRaw    string        `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	ShutdownTimeoutRaw string        `yaml:"shutdown_timeout" env:"HTTP_SHUTDOWN_TIMEOUT"`
}

// DatabaseConfig は PostgreSQL 接続に関する設定です。
type DatabaseConfig struct {
	Host               string        `yaml:"host" env:"DATABASE_HOST"`
	Port               int           `yaml:"port" env:"DATABASE_PORT"`
	User               string        `yaml:"user" env:"DATABASE_USER"`
	Password           string        `yaml:"password" env:"DATABASE_PASSWORD"`
	Name               string        `yaml:"name" env:"DATABASE_NAME"`
	SSLMode            string        `yaml:"ssl_mode" env:"DATABASE_SSL_MODE"`
	MaxOpenConns       int           `yaml:"max_open_conns" env:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns       int           `yaml:"max_idle_conns" env:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime    time.Duration `yaml:"-"`
	ConnMaxIdleTime    time.Duration `yaml:"-"`
	ConnMaxLifetimeRaw string        `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME"`
	ConnMaxIdleTimeRaw string        `yaml:"conn_max_idle_time" env:"DATABASE_CONN_MAX_IDLE_TIME"`
}

// LoggerConfig は zap ロガーの設定です。
type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL"`
	Format     string `yaml:"format" env:"LOG_FORMAT"`
	OutputPath string `yaml:"output_path" env:"LOG_OUTPUT_PATH"`
}

// AuditConfig は監査ログ記録の扱いを決めます。
// Strict が true の場合、監査ログの書き込み失敗は承認自体を失敗させます。
type AuditConfig struct {
	Strict bool `yaml:"strict" env:"AUDIT_STRICT"`
}

// Load は指定されたパスから設定ファイルを読み込み、環境変数で上書きします。
func Load(path string) (*Config, error) {
	return load(path, nil)
}

func load(path string, environment map[string]string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := cfg.validateAndNormalize(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validateAndNormalize() error {
	if c.Server.ListenAddr == "" {
		return fmt.Errorf("config: server.listen_addr must be set")
	}

	if err := c.HTTP.validateAndNormalize(); err != nil {
		return err
	}

	db := &c.Database
	if err := db.validateAndNormalize(); err != nil {
		return err
	}

	if err := c.Logger.validateAndNormalize(); err != nil {
		return err
	}

	return nil
}

func (h *HTTPConfig) validateAndNormalize() error {
	if h.ListenAddr == "" {
		return fmt.Errorf("config: http.listen_addr must be set")
	}

	var err error
	if h.ReadTimeout, err = parseDurationWithDefault(h.ReadTimeoutRaw, 10*time.Second); err != nil {
		return fmt.Errorf("config: http.read_timeout: %w", err)
	}
	if h.WriteTimeout, err = parseDurationWithDefault(h.WriteTimeoutRaw, 10*time.Second); err != nil {
		return fmt.Errorf("config: http.write_timeout: %w", err)
	}
	if h.ShutdownTimeout, err = parseDurationWithDefault(h.ShutdownTimeoutRaw, 15*time.Second); err != nil {
		return fmt.Errorf("config: http.shutdown_timeout: %w", err)
	}
	return nil
}

func (d *DatabaseConfig) validateAndNormalize() error {
	if d.Host == "" {
		return fmt.Errorf("config: database.host must be set")
	}
	if d.Port == 0 {
		return fmt.Errorf("config: database.port must be set")
	}
	if d.User == "" {
		return fmt.Errorf("config: database.user must be set")
	}
	if d.Password == "" {
		return fmt.Errorf("config: database.password must be set")
	}
	if d.Name == "" {
		return fmt.Errorf("config: database.name must be set")
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}

	lifetime, err := parseDurationWithDefault(d.ConnMaxLifetimeRaw, 0)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_lifetime: %w", err)
	}
	d.ConnMaxLifetime = lifetime

	idleTime, err := parseDurationWithDefault(d.ConnMaxIdleTimeRaw, 0)
	if err != nil {
		return fmt.Errorf("config: database.conn_max_idle_time: %w", err)
	}
	d.ConnMaxIdleTime = idleTime

	return nil
}

func (l *LoggerConfig) validateAndNormalize() error {
	if l.Level == "" {
		l.Level = "info"
	}
	l.Format = strings.ToLower(strings.TrimSpace(l.Format))
	switch l.Format {
	case "":
		l.Format = "json"
	case "json", "console":
	default:
		return fmt.Errorf("config: logger.format must be json or console, got %q", l.Format)
	}
	if l.OutputPath == "" {
		l.OutputPath = "stdout"
	}
	return nil
}

func parseDurationWithDefault(raw string, fallback time.Duration) (time.Duration, error) {
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	return d, nil
}

// DSN は pgx 用の接続文字列を返します。ユーザー名とパスワードは URL エスケープされます。
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: "sslmode=" + url.QueryEscape(d.SSLMode),
	}
	return u.String()
}
