package config

const EnvPrefix = "BARAKAT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	KVDriverMemory   = "memory"
	KVDriverRedis    = "redis"
	KVDriverSQLite   = "sqlite"
	KVDriverPostgres = "postgres"
)

const (
	EnvAppEnv       = "BARAKAT_APP_ENV"
	EnvPort         = "BARAKAT_APP_PORT"
	EnvKVDriver     = "BARAKAT_KV_DRIVER"
	EnvDBDSN        = "BARAKAT_DB_DSN"
	EnvRedisURL     = "BARAKAT_REDIS_URL"
	EnvRedisAddr    = "BARAKAT_REDIS_ADDR"
	EnvJWTSecret    = "BARAKAT_JWT_SECRET"
	EnvJWTIssuer    = "BARAKAT_JWT_ISSUER"
	EnvDeliveryFee  = "BARAKAT_DELIVERY_FEE"
	EnvFreeDelivery = "BARAKAT_FREE_DELIVERY_THRESHOLD"
)
