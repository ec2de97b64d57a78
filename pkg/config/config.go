package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	DB      DBConfig
	Redis   RedisConfig
	Catalog CatalogConfig
	Cart    CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.Cart.Backend() == StorageSQL {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ROCKETCART_APP_ENV" required:"true"`
	Port         string `envconfig:"ROCKETCART_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ROCKETCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ROCKETCART_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"ROCKETCART_DB_DSN"`
	Driver string `envconfig:"ROCKETCART_DB_DRIVER" default:"postgres"`

	SQLitePath string `envconfig:"ROCKETCART_DB_SQLITE_PATH" default:"rocketcart.db"`

	LegacyHost     string `envconfig:"ROCKETCART_DB_HOST"`
	LegacyPort     int    `envconfig:"ROCKETCART_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ROCKETCART_DB_USER"`
	LegacyPassword string `envconfig:"ROCKETCART_DB_PASSWORD"`
	LegacyName     string `envconfig:"ROCKETCART_DB_NAME"`
	LegacySSLMode  string `envconfig:"ROCKETCART_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ROCKETCART_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ROCKETCART_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ROCKETCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ROCKETCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver was selected.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"ROCKETCART_REDIS_URL"`
	Address      string        `envconfig:"ROCKETCART_REDIS_ADDR"`
	Password     string        `envconfig:"ROCKETCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"ROCKETCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ROCKETCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ROCKETCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ROCKETCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ROCKETCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ROCKETCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig points at the upstream storefront catalog/stock API.
type CatalogConfig struct {
	BaseURL string `envconfig:"ROCKETCART_CATALOG_BASE_URL" required:"true"`

	// A zero timeout leaves oracle calls unbounded; a cart operation then
	// hangs for as long as the upstream does.
	RequestTimeout time.Duration `envconfig:"ROCKETCART_CATALOG_REQUEST_TIMEOUT" default:"0"`
}

type CartConfig struct {
	Storage      string `envconfig:"ROCKETCART_CART_STORAGE" default:"redis"`
	KeyNamespace string `envconfig:"ROCKETCART_CART_KEY_NAMESPACE" default:"rocketcart"`
	FeedCapacity int    `envconfig:"ROCKETCART_CART_FEED_CAPACITY" default:"20"`
}

func (c CartConfig) validate() error {
	switch c.Backend() {
	case StorageRedis, StorageSQL, StorageMemory:
		return nil
	}
	return fmt.Errorf("unsupported cart storage %q", c.Storage)
}

// Backend returns the normalized storage backend selector.
func (c CartConfig) Backend() string {
	return strings.ToLower(strings.TrimSpace(c.Storage))
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.IsSQLite() {
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
