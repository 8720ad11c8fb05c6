package config

// EnvPrefix is applied by envconfig when resolving variables.
const EnvPrefix = "GAMEHAUL"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv      = "GAMEHAUL_APP_ENV"
	EnvPort        = "GAMEHAUL_APP_PORT"
	EnvDBDSN       = "GAMEHAUL_DB_DSN"
	EnvDBHost      = "GAMEHAUL_DB_HOST"
	EnvDBUser      = "GAMEHAUL_DB_USER"
	EnvDBName      = "GAMEHAUL_DB_NAME"
	EnvRedisURL    = "GAMEHAUL_REDIS_URL"
	EnvJWTSecret   = "GAMEHAUL_JWT_SECRET"
	EnvJWTIssuer   = "GAMEHAUL_JWT_ISSUER"
	EnvJWTExpMins  = "GAMEHAUL_JWT_EXPIRATION_MINUTES"
	EnvRefreshTTL  = "GAMEHAUL_REFRESH_TOKEN_TTL_MINUTES"
	EnvAdminEmails = "GAMEHAUL_ADMIN_EMAILS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
