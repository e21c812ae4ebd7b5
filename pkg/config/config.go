package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	KV           KVConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Password     PasswordConfig
	FeatureFlags FeatureFlagsConfig
	Catalog      CatalogConfig
	Checkout     CheckoutConfig
	CORS         CORSConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"BARAKAT_APP_ENV" required:"true"`
	Port         string `envconfig:"BARAKAT_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"BARAKAT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BARAKAT_LOG_WARN_STACK" default:"false"`

	ShutdownTimeout time.Duration `envconfig:"BARAKAT_SHUTDOWN_TIMEOUT" default:"10s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// KVConfig selects the backend that stores visitor state.
type KVConfig struct {
	Driver string `envconfig:"BARAKAT_KV_DRIVER" default:"memory"`
}

// NormalizedDriver returns the lower-cased driver name.
func (k KVConfig) NormalizedDriver() string {
	driver := strings.ToLower(strings.TrimSpace(k.Driver))
	if driver == "" {
		return KVDriverMemory
	}
	return driver
}

type DBConfig struct {
	DSN string `envconfig:"BARAKAT_DB_DSN"`

	MaxOpenConns    int           `envconfig:"BARAKAT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BARAKAT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BARAKAT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BARAKAT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BARAKAT_REDIS_URL"`
	Address      string        `envconfig:"BARAKAT_REDIS_ADDR"`
	Password     string        `envconfig:"BARAKAT_REDIS_PASSWORD"`
	DB           int           `envconfig:"BARAKAT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BARAKAT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BARAKAT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BARAKAT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BARAKAT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BARAKAT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"BARAKAT_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BARAKAT_JWT_ISSUER" default:"barakat"`
	ExpirationMinutes int    `envconfig:"BARAKAT_JWT_EXPIRATION_MINUTES" default:"43200"`
}

// TTL returns the visitor token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"BARAKAT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"BARAKAT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"BARAKAT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"BARAKAT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"BARAKAT_ARGON_KEY_LEN" default:"32"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BARAKAT_AUTO_MIGRATE" default:"false"`
}

type CatalogConfig struct {
	Path string `envconfig:"BARAKAT_CATALOG_PATH"`
}

// CheckoutConfig holds the delivery pricing rule applied to order quotes.
type CheckoutConfig struct {
	DeliveryFee           decimal.Decimal `envconfig:"BARAKAT_DELIVERY_FEE" default:"200"`
	FreeDeliveryThreshold decimal.Decimal `envconfig:"BARAKAT_FREE_DELIVERY_THRESHOLD" default:"5000"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BARAKAT_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (c *Config) validate() error {
	switch c.KV.NormalizedDriver() {
	case KVDriverMemory:
	case KVDriverRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("either %s or %s is required for the redis kv driver", EnvRedisURL, EnvRedisAddr)
		}
	case KVDriverSQLite, KVDriverPostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required for the %s kv driver", EnvDBDSN, c.KV.NormalizedDriver())
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvKVDriver, c.KV.Driver)
	}
	if c.Checkout.DeliveryFee.IsNegative() || c.Checkout.FreeDeliveryThreshold.IsNegative() {
		return fmt.Errorf("delivery pricing must not be negative")
	}
	return nil
}
