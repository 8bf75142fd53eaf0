package config

// EnvPrefix is passed to envconfig; individual fields spell the full
// variable names so the prefix mostly serves documentation.
const EnvPrefix = "TRANSPORTLY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "TRANSPORTLY_APP_ENV"
	EnvPort                   = "TRANSPORTLY_APP_PORT"
	EnvDBDSN                  = "TRANSPORTLY_DB_DSN"
	EnvDBHost                 = "TRANSPORTLY_DB_HOST"
	EnvDBUser                 = "TRANSPORTLY_DB_USER"
	EnvDBName                 = "TRANSPORTLY_DB_NAME"
	EnvRedisURL               = "TRANSPORTLY_REDIS_URL"
	EnvJWTSecret              = "TRANSPORTLY_JWT_SECRET"
	EnvJWTIssuer              = "TRANSPORTLY_JWT_ISSUER"
	EnvJWTExpMins             = "TRANSPORTLY_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "TRANSPORTLY_REFRESH_TOKEN_TTL_MINUTES"
	EnvGCSBucket              = "TRANSPORTLY_GCS_BUCKET_NAME"
	EnvMediaPublicBaseURL     = "TRANSPORTLY_MEDIA_PUBLIC_BASE_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
