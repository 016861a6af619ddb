package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "STAYBNB"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Canonical env var names, used by tests and operational tooling.
const (
	EnvAppEnv     = "STAYBNB_APP_ENV"
	EnvPort       = "STAYBNB_APP_PORT"
	EnvLogLevel   = "STAYBNB_LOG_LEVEL"
	EnvMongoURL   = "STAYBNB_MONGO_URL"
	EnvMongoDB    = "STAYBNB_MONGO_DB"
	EnvRedisURL   = "STAYBNB_REDIS_URL"
	EnvJWTSecret  = "STAYBNB_JWT_SECRET"
	EnvJWTIssuer  = "STAYBNB_JWT_ISSUER"
	EnvJWTExpMins = "STAYBNB_JWT_EXPIRATION_MINUTES"
)
