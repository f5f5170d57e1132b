package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix namespaces every storefront environment variable.
const EnvPrefix = "distromart"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "DISTROMART_DB_DSN"
	EnvDBHost = "DISTROMART_DB_HOST"
	EnvDBUser = "DISTROMART_DB_USER"
	EnvDBName = "DISTROMART_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Upstream     UpstreamConfig
	Draft        DraftConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"DISTROMART_APP_ENV" required:"true"`
	Port         string `envconfig:"DISTROMART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DISTROMART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DISTROMART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"DISTROMART_DB_DSN"`
	Driver string `envconfig:"DISTROMART_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DISTROMART_DB_HOST"`
	LegacyPort     int    `envconfig:"DISTROMART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DISTROMART_DB_USER"`
	LegacyPassword string `envconfig:"DISTROMART_DB_PASSWORD"`
	LegacyName     string `envconfig:"DISTROMART_DB_NAME"`
	LegacySSLMode  string `envconfig:"DISTROMART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DISTROMART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DISTROMART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DISTROMART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DISTROMART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DISTROMART_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DISTROMART_REDIS_ADDR"`
	Password     string        `envconfig:"DISTROMART_REDIS_PASSWORD"`
	DB           int           `envconfig:"DISTROMART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DISTROMART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DISTROMART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DISTROMART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DISTROMART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DISTROMART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret string `envconfig:"DISTROMART_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"DISTROMART_JWT_ISSUER" required:"true"`
}

// UpstreamConfig points at the distribution platform REST API the storefront
// fronts. A zero timeout keeps the http.Client default, matching the behavior
// the storefront inherited from its predecessor.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"DISTROMART_UPSTREAM_BASE_URL" required:"true"`
	Timeout time.Duration `envconfig:"DISTROMART_UPSTREAM_TIMEOUT" default:"0"`
}

// DraftConfig controls rep order-draft staging. Drafts are session-scoped and
// expire unless the rep submits or cancels first.
type DraftConfig struct {
	TTL time.Duration `envconfig:"DISTROMART_DRAFT_TTL" default:"12h"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"DISTROMART_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DISTROMART_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DISTROMART_AUTO_MIGRATE" default:"false"`
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
