package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Store drivers selectable through STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

type Config struct {
	Port           string   `env:"PORT,            default=8080"`
	Env            string   `env:"ENV,             default=development"`
	JWTSecret      string   `env:"JWT_SECRET,      required"`
	LogLevel       string   `env:"LOG_LEVEL,       default=info"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS"`
	StaticDir      string   `env:"STATIC_DIR"`
	MaxPageLimit   int      `env:"MAX_PAGE_LIMIT,  default=100"`
	AuthEnabled    bool     `env:"AUTH_ENABLED,    default=true"`
	StoreDriver    string   `env:"STORE_DRIVER,    default=postgres"`

	Postgres PostgresConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

// PostgresConfig holds both credential tiers. Production connects with the
// public tier, every other environment with the service-role tier.
type PostgresConfig struct {
	URL             string        `env:"POSTGRES_URL,              default=postgres://localhost:5432/talenthub"`
	PublicUser      string        `env:"POSTGRES_PUBLIC_USER"`
	PublicPassword  string        `env:"POSTGRES_PUBLIC_PASSWORD"`
	ServiceUser     string        `env:"POSTGRES_SERVICE_USER"`
	ServicePassword string        `env:"POSTGRES_SERVICE_PASSWORD"`
	MaxConns        int32         `env:"POSTGRES_MAX_CONNS,        default=10"`
	ConnectTimeout  time.Duration `env:"POSTGRES_CONNECT_TIMEOUT,  default=10s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI,      default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,       default=talenthub"`
	Username string `env:"MONGO_USERNAME"`
	Password string `env:"MONGO_PASSWORD"`
}

// RedisConfig is optional; an empty address disables the seed lock.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,  default=0"`
}

// Load reads an optional .env file, then the process environment.
func Load(ctx context.Context) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return finish(&cfg)
}

// LoadFrom builds a Config from an explicit set of variables.
func LoadFrom(ctx context.Context, env map[string]string) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(env),
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return finish(&cfg)
}

func finish(cfg *Config) (*Config, error) {
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	origins := cfg.AllowedOrigins[:0]
	for _, o := range cfg.AllowedOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.AllowedOrigins = origins

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the rules struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.JWTSecret) == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.MaxPageLimit < 0 {
		errs = append(errs, fmt.Errorf("MAX_PAGE_LIMIT must not be negative, got %d", c.MaxPageLimit))
	}
	switch c.StoreDriver {
	case DriverPostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, errors.New("POSTGRES_URL is required for the postgres driver"))
		}
		if c.Postgres.MaxConns < 1 {
			errs = append(errs, errors.New("POSTGRES_MAX_CONNS must be positive"))
		}
	case DriverMongo:
		if c.Mongo.URI == "" || c.Mongo.Database == "" {
			errs = append(errs, errors.New("MONGO_URI and MONGO_DB are required for the mongo driver"))
		}
	case DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("STORE_DRIVER must be one of postgres, mongo, memory, got %q", c.StoreDriver))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// StoreCredentials returns the Postgres user and password for the current
// environment.
func (c *Config) StoreCredentials() (user, password string) {
	if c.IsProduction() {
		return c.Postgres.PublicUser, c.Postgres.PublicPassword
	}
	return c.Postgres.ServiceUser, c.Postgres.ServicePassword
}
