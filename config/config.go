package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// App holds every setting read from the environment (or a .env file).
type App struct {
	// HTTP
	Port        string   `envconfig:"PORT"`
	UseHTTPS    bool     `envconfig:"USE_HTTPS" default:"false"`
	CertFile    string   `envconfig:"TLS_CERT_FILE" default:"/etc/letsencrypt/live/lovefortennis/fullchain.pem"`
	KeyFile     string   `envconfig:"TLS_KEY_FILE" default:"/etc/letsencrypt/live/lovefortennis/privkey.pem"`
	Prod        bool     `envconfig:"PROD" default:"false"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	// Sessions and tokens
	SessionKey   string `envconfig:"KEY" default:"lovefortennis-dev-session-key"`
	JWTSecret    string `envconfig:"JWT_SECRET" default:"lovefortennis-dev-jwt-secret"`
	JWTExpireMin int    `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	ResetTTLMin  int    `envconfig:"RESET_TOKEN_TTL_MIN" default:"60"`

	// Database
	DBDriver         string `envconfig:"DB_DRIVER" default:"postgres"`
	SQLitePath       string `envconfig:"SQLITE_PATH" default:"lovefortennis.db"`
	PostgresUser     string `envconfig:"POSTGRES_USER"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD"`
	PostgresHost     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	PostgresPort     string `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresDatabase string `envconfig:"POSTGRES_DATABASE" default:"lovefortennis"`
	PostgresSSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
	VerbosePostgres  bool   `envconfig:"VERBOSE_POSTGRES" default:"false"`
	MigratePostgres  bool   `envconfig:"MIGRATE_POSTGRES" default:"true"`
	SeedData         bool   `envconfig:"SEED_DATA" default:"true"`

	// Redis, empty keeps reset tokens and login counters in memory
	RedisURL string `envconfig:"REDIS_URL"`

	// Club rules
	ClubTimezone     string `envconfig:"CLUB_TIMEZONE" default:"UTC"`
	LoginRatePerMin  int    `envconfig:"LOGIN_RATE_PER_MIN" default:"10"`
	MaxLoginFailures int    `envconfig:"MAX_LOGIN_FAILURES" default:"5"`
	LoginLockoutMin  int    `envconfig:"LOGIN_LOCKOUT_MIN" default:"15"`

	// Tracing, disabled when empty
	OTelEndpoint string `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `envconfig:"OTEL_SERVICE_NAME" default:"lovefortennis"`
}

func Load() (App, error) {
	var c App
	err := envconfig.Process("", &c)
	return c, err
}

// ListenPort falls back to 443 under HTTPS and 8080 otherwise.
func (c App) ListenPort() string {
	if c.Port != "" {
		return c.Port
	}
	if c.UseHTTPS {
		return "443"
	}
	return "8080"
}

func (c App) JWTTTL() time.Duration {
	return time.Duration(c.JWTExpireMin) * time.Minute
}

func (c App) ResetTokenTTL() time.Duration {
	return time.Duration(c.ResetTTLMin) * time.Minute
}

func (c App) LoginLockout() time.Duration {
	return time.Duration(c.LoginLockoutMin) * time.Minute
}

// Location resolves the club timezone used for booking windows.
func (c App) Location() (*time.Location, error) {
	return time.LoadLocation(c.ClubTimezone)
}
