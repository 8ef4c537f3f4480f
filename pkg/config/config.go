package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "MERCALINE_DB_DSN"
	EnvDBHost = "MERCALINE_DB_HOST"
	EnvDBUser = "MERCALINE_DB_USER"
	EnvDBName = "MERCALINE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	Media         MediaConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string   `envconfig:"MERCALINE_APP_ENV" required:"true"`
	Port         string   `envconfig:"MERCALINE_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"MERCALINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"MERCALINE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"MERCALINE_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"MERCALINE_DB_DSN"`
	Driver string `envconfig:"MERCALINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"MERCALINE_DB_HOST"`
	LegacyPort     int    `envconfig:"MERCALINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"MERCALINE_DB_USER"`
	LegacyPassword string `envconfig:"MERCALINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"MERCALINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"MERCALINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"MERCALINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"MERCALINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"MERCALINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MERCALINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"MERCALINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"MERCALINE_REDIS_ADDR"`
	Password     string        `envconfig:"MERCALINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"MERCALINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MERCALINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MERCALINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MERCALINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MERCALINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MERCALINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"MERCALINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"MERCALINE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"MERCALINE_JWT_EXPIRATION_MINUTES" default:"60"`
	SessionTTLMinutes int    `envconfig:"MERCALINE_SESSION_TTL_MINUTES" default:"43200"`
}

// SessionTTL returns the Redis session lifetime configured in minutes.
func (j JWTConfig) SessionTTL() time.Duration {
	if j.SessionTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.SessionTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"MERCALINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"MERCALINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"MERCALINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"MERCALINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"MERCALINE_ARGON_KEY_LEN" default:"32"`
}

type MediaConfig struct {
	UploadDir     string `envconfig:"MERCALINE_MEDIA_UPLOAD_DIR" default:"public/images"`
	PublicBaseURL string `envconfig:"MERCALINE_MEDIA_PUBLIC_BASE_URL" default:"/public/images"`
	MaxUploadMB   int    `envconfig:"MERCALINE_MEDIA_MAX_UPLOAD_MB" default:"10"`
}

// MaxUploadBytes converts the configured ceiling to bytes.
func (m MediaConfig) MaxUploadBytes() int64 {
	return int64(m.MaxUploadMB) * 1024 * 1024
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"MERCALINE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"MERCALINE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"MERCALINE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"MERCALINE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"MERCALINE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"MERCALINE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	ResetWindow        time.Duration `envconfig:"MERCALINE_AUTH_RATE_LIMIT_RESET_WINDOW" default:"10m"`
	ResetEmailLimit    int           `envconfig:"MERCALINE_AUTH_RATE_LIMIT_RESET_EMAIL_LIMIT" default:"3"`
	ResetIPLimit       int           `envconfig:"MERCALINE_AUTH_RATE_LIMIT_RESET_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MERCALINE_AUTO_MIGRATE" default:"false"`
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
