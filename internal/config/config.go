package config

import (
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultConfigPath = "./config/local.yaml"

type HTTPServer struct {
	Addr         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER" env-default:"default"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15m"`
}

type Security struct {
	JWTKey         string        `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int           `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
	ResetTokenTTL  time.Duration `yaml:"RESET_TOKEN_TTL" env:"RESET_TOKEN_TTL" env-default:"1h"`
}

type Session struct {
	CookieName string        `yaml:"COOKIE_NAME" env:"SESSION_COOKIE_NAME" env-default:"nuts_session"`
	MaxAge     time.Duration `yaml:"COOKIE_MAX_AGE" env:"SESSION_COOKIE_MAX_AGE" env-default:"336h"`
	// Secure is a pointer so an explicit false in the file survives; nil means secure.
	Secure *bool `yaml:"COOKIE_SECURE"`
}

const sessionSecureEnv = "SESSION_COOKIE_SECURE"

// SecureCookie reports whether the session cookie carries the Secure attribute.
func (s Session) SecureCookie() bool {
	return s.Secure == nil || *s.Secure
}

// cleanenv cannot parse pointer fields from the environment, so the override is read here.
func (s *Session) applyEnv() error {
	raw, ok := os.LookupEnv(sessionSecureEnv)
	if !ok {
		return nil
	}

	secure, err := strconv.ParseBool(raw)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", sessionSecureEnv, err)
	}

	s.Secure = &secure

	return nil
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
	Namespace  string        `yaml:"namespace" env:"CACHE_NAMESPACE" env-default:"nuts"`
}

type Otel struct {
	Enabled          bool    `yaml:"ENABLED" env:"OTEL_ENABLED" env-default:"false"`
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"nuts-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_ENDPOINT" env-default:"http://localhost:4318/v1/traces"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

type Stripe struct {
	WebhookSecret string `yaml:"STRIPE_WEBHOOK_SECRET" env:"STRIPE_WEBHOOK_SECRET" env-default:""`
}

// Simulator configures the progression job. An empty PushgatewayURL disables the metrics push.
type Simulator struct {
	SuccessRatio   float64 `yaml:"SUCCESS_RATIO" env:"SIMULATOR_SUCCESS_RATIO" env-default:"0.6666666666666666"`
	LockKey        int64   `yaml:"LOCK_KEY" env:"SIMULATOR_LOCK_KEY" env-default:"7261"`
	PushgatewayURL string  `yaml:"PUSHGATEWAY_URL" env:"SIMULATOR_PUSHGATEWAY_URL"`
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-required:"true"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Security     Security     `yaml:"security"`
	Session      Session      `yaml:"session"`
	Cache        CacheConfig  `yaml:"cache"`
	Otel         Otel         `yaml:"otel"`
	Stripe       Stripe       `yaml:"stripe"`
	Simulator    Simulator    `yaml:"simulator"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the YAML config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = defaultConfigPath
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatal(err)
	}

	return cfg
}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("can not read config file: %w", err)
	}

	if err := cfg.Session.applyEnv(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		url.QueryEscape(d.User), url.QueryEscape(d.Password), d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s/%d",
		url.QueryEscape(r.Username), url.QueryEscape(r.Password), r.Host, r.Port, r.DB)
}

// Addr returns host:port for clients that take a plain address.
func (r *RedisConnect) Addr() string {
	return r.Host + ":" + r.Port
}
