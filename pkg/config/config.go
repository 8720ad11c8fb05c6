package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Admin         AdminConfig
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
	Env          string `envconfig:"GAMEHAUL_APP_ENV" required:"true"`
	Port         string `envconfig:"GAMEHAUL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GAMEHAUL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GAMEHAUL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GAMEHAUL_DB_DSN"`
	Driver string `envconfig:"GAMEHAUL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GAMEHAUL_DB_HOST"`
	LegacyPort     int    `envconfig:"GAMEHAUL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GAMEHAUL_DB_USER"`
	LegacyPassword string `envconfig:"GAMEHAUL_DB_PASSWORD"`
	LegacyName     string `envconfig:"GAMEHAUL_DB_NAME"`
	LegacySSLMode  string `envconfig:"GAMEHAUL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GAMEHAUL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GAMEHAUL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GAMEHAUL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GAMEHAUL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GAMEHAUL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"GAMEHAUL_REDIS_ADDR"`
	Password     string        `envconfig:"GAMEHAUL_REDIS_PASSWORD"`
	DB           int           `envconfig:"GAMEHAUL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GAMEHAUL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GAMEHAUL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GAMEHAUL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GAMEHAUL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GAMEHAUL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GAMEHAUL_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GAMEHAUL_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"GAMEHAUL_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"GAMEHAUL_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GAMEHAUL_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GAMEHAUL_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GAMEHAUL_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GAMEHAUL_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GAMEHAUL_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"GAMEHAUL_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"GAMEHAUL_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"GAMEHAUL_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"GAMEHAUL_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"GAMEHAUL_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"GAMEHAUL_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"GAMEHAUL_AUTO_MIGRATE" default:"false"`
}

// AdminConfig holds the allow-list of emails auto-promoted to the admin role.
type AdminConfig struct {
	Emails []string `envconfig:"GAMEHAUL_ADMIN_EMAILS"`
}

// NormalizedAdminEmails returns the allow-list lowercased and trimmed, with
// empty entries removed.
func (a AdminConfig) NormalizedAdminEmails() []string {
	out := make([]string, 0, len(a.Emails))
	for _, email := range a.Emails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email == "" {
			continue
		}
		out = append(out, email)
	}
	return out
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
