package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix is the envconfig prefix shared by every service binary.
	EnvPrefix = "ristora"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvAppEnv    = "RISTORA_APP_ENV"
	EnvPort      = "RISTORA_APP_PORT"
	EnvDBDSN     = "RISTORA_DB_DSN"
	EnvDBHost    = "RISTORA_DB_HOST"
	EnvDBUser    = "RISTORA_DB_USER"
	EnvDBName    = "RISTORA_DB_NAME"
	EnvRedisURL  = "RISTORA_REDIS_URL"
	EnvJWTSecret = "RISTORA_JWT_SECRET"
	EnvJWTIssuer = "RISTORA_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	FeatureFlags FeatureFlagsConfig
	Report       ReportConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"RISTORA_APP_ENV" required:"true"`
	Port         string `envconfig:"RISTORA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"RISTORA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RISTORA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RISTORA_DB_DSN"`
	Driver string `envconfig:"RISTORA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"RISTORA_DB_HOST"`
	LegacyPort     int    `envconfig:"RISTORA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"RISTORA_DB_USER"`
	LegacyPassword string `envconfig:"RISTORA_DB_PASSWORD"`
	LegacyName     string `envconfig:"RISTORA_DB_NAME"`
	LegacySSLMode  string `envconfig:"RISTORA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RISTORA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"RISTORA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"RISTORA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RISTORA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RISTORA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"RISTORA_REDIS_ADDR"`
	Password     string        `envconfig:"RISTORA_REDIS_PASSWORD"`
	DB           int           `envconfig:"RISTORA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RISTORA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RISTORA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RISTORA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RISTORA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RISTORA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"RISTORA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"RISTORA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"RISTORA_JWT_EXPIRATION_MINUTES" default:"60"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"RISTORA_AUTO_MIGRATE" default:"false"`
}

type ReportConfig struct {
	// MaxRangeDays caps the date span a single sales report may cover.
	MaxRangeDays    int           `envconfig:"RISTORA_REPORT_MAX_RANGE_DAYS" default:"366"`
	VATRateCacheTTL time.Duration `envconfig:"RISTORA_REPORT_VAT_CACHE_TTL" default:"10m"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
