package config

const (
	EnvPrefix = "rocketcart"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageRedis  = "redis"
	StorageSQL    = "sql"
	StorageMemory = "memory"

	EnvAppEnv         = "ROCKETCART_APP_ENV"
	EnvPort           = "ROCKETCART_APP_PORT"
	EnvDBDSN          = "ROCKETCART_DB_DSN"
	EnvDBHost         = "ROCKETCART_DB_HOST"
	EnvDBUser         = "ROCKETCART_DB_USER"
	EnvDBName         = "ROCKETCART_DB_NAME"
	EnvRedisURL       = "ROCKETCART_REDIS_URL"
	EnvCatalogBaseURL = "ROCKETCART_CATALOG_BASE_URL"
	EnvCartStorage    = "ROCKETCART_CART_STORAGE"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
