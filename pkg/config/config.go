package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Idempotency  IdempotencyConfig
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
	Env          string `envconfig:"RESTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"RESTOCK_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"RESTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"RESTOCK_LOG_WARN_STACK" default:"false"`

	CORSOrigins []string `envconfig:"RESTOCK_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"RESTOCK_DB_DSN"`
	Driver string `envconfig:"RESTOCK_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"RESTOCK_DB_HOST"`
	Port     int    `envconfig:"RESTOCK_DB_PORT" default:"5432"`
	User     string `envconfig:"RESTOCK_DB_USER"`
	Password string `envconfig:"RESTOCK_DB_PASSWORD"`
	Name     string `envconfig:"RESTOCK_DB_NAME"`
	SSLMode  string `envconfig:"RESTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"RESTOCK_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"RESTOCK_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"RESTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"RESTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"RESTOCK_REDIS_URL"`
	PoolSize     int           `envconfig:"RESTOCK_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RESTOCK_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RESTOCK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RESTOCK_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RESTOCK_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis-backed feature may be wired at all.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != ""
}

type IdempotencyConfig struct {
	TTL time.Duration `envconfig:"RESTOCK_IDEMPOTENCY_TTL" default:"24h"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool   `envconfig:"RESTOCK_USE_SQLITE" default:"false"`
	SQLitePath  string `envconfig:"RESTOCK_SQLITE_PATH" default:"restock.db"`
	AutoMigrate bool   `envconfig:"RESTOCK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
