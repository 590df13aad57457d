package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config represents the application configuration structure.
// It contains settings for the environment, HTTP server, database connection,
// link cache, background worker, bearer auth, the shorten client and graceful
// shutdown behavior.
type Config struct {
	// Environment specifies the current running environment (development, production, etc.)
	Environment string `env:"ENVIRONMENT" env-default:"development" yaml:"environment"`

	// HTTP contains all HTTP server related configurations
	HTTP struct {
		// Addr is the address and port the HTTP server will listen on
		Addr string `env:"HTTP_ADDR" env-default:":8080" yaml:"addr"`
		// ReadTimeout is the maximum duration for reading the entire request, including the body
		ReadTimeout time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"1m" yaml:"readTimeout"`
		// ReadHeaderTimeout is the amount of time allowed to read request headers
		ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" env-default:"10s" yaml:"readHeaderTimeout"`
		// WriteTimeout is the maximum duration before timing out writes of the response
		WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"2m" yaml:"writeTimeout"`
		// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled
		IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"2m" yaml:"idleTimeout"`
		// RequestTimeout is the maximum time allowed for processing a single request
		RequestTimeout time.Duration `env:"HTTP_REQUEST_TIMEOUT" env-default:"10s" yaml:"requestTimeout"`
		// MaxHeaderBytes controls the maximum number of bytes the server will read parsing the request header
		MaxHeaderBytes int `env:"HTTP_MAX_HEADER_BYTES" env-default:"0" yaml:"maxHeaderBytes"`
		// MetricsPath defines the URL path where metrics are exposed
		MetricsPath string `env:"HTTP_METRICS_PATH" env-default:"/metrics" yaml:"metricsPath"`
		// AllowedOrigins lists the origins allowed by CORS; "*" allows any
		AllowedOrigins []string `env:"HTTP_ALLOWED_ORIGINS" env-default:"*" env-separator:"," yaml:"allowedOrigins"`
	} `yaml:"http"`

	// Database contains all database connection related configurations
	Database struct {
		// Username for database authentication
		Username string `env:"DATABASE_USERNAME" env-default:"myuser" yaml:"username"`
		// Password for database authentication
		Password string `env:"DATABASE_PASSWORD" env-default:"mypassword" yaml:"password"`
		// Host is the database server hostname or IP address
		Host string `env:"DATABASE_HOST" env-default:"localhost" yaml:"host"`
		// Port is the database server port number
		Port int `env:"DATABASE_PORT" env-default:"5432" yaml:"port"`
		// SslMode defines the SSL mode for the database connection
		SslMode string `env:"DATABASE_SSL_MODE" env-default:"disable" yaml:"sslMode"`
		// DatabaseName is the name of the database to connect to
		DatabaseName string `env:"DATABASE_NAME" env-default:"shortener" yaml:"name"`
		// MaxOpenConnections limits the number of open connections to the database
		MaxOpenConnections int `env:"DATABASE_MAX_OPEN_CONNECTIONS" env-default:"10" yaml:"maxOpenConnections"`
		// MaxIdleConnections limits the number of connections in the idle connection pool
		MaxIdleConnections int `env:"DATABASE_MAX_IDLE_CONNECTIONS" env-default:"8" yaml:"maxIdleConnections"`
		// ConnMaxLifetime is the maximum amount of time a connection may be reused
		ConnMaxLifetime time.Duration `env:"DATABASE_CONNECTION_MAX_LIFETIME" env-default:"3m" yaml:"connMaxLifetime"`
		// ConnMaxIdleTime is the maximum amount of time a connection may be idle
		ConnMaxIdleTime time.Duration `env:"DATABASE_CONNECTION_MAX_IDLE_TIME" env-default:"3m" yaml:"connMaxIdleTime"`
		// ConnectAttempts is how many times the database is pinged on startup before giving up
		ConnectAttempts int `env:"DATABASE_CONNECT_ATTEMPTS" env-default:"5" yaml:"connectAttempts"`
		// ConnectRetryDelay is the pause between startup pings
		ConnectRetryDelay time.Duration `env:"DATABASE_CONNECT_RETRY_DELAY" env-default:"5s" yaml:"connectRetryDelay"`
	} `yaml:"database"`

	// Cache configures the redis link cache. An empty Addr disables caching.
	Cache struct {
		// Addr is the redis host:port
		Addr string `env:"CACHE_ADDR" env-default:"" yaml:"addr"`
		// Password for redis authentication
		Password string `env:"CACHE_PASSWORD" env-default:"" yaml:"password"`
		// DB is the redis logical database
		DB int `env:"CACHE_DB" env-default:"0" yaml:"db"`
		// TTL is how long a resolved link stays cached
		TTL time.Duration `env:"CACHE_TTL" env-default:"10m" yaml:"ttl"`
	} `yaml:"cache"`

	// Links configures how short links are built
	Links struct {
		// PublicURL is the base of generated short URLs
		PublicURL string `env:"LINKS_PUBLIC_URL" env-default:"http://localhost:8080" yaml:"publicURL"`
		// NormalizeURLs makes equivalent spellings of a URL share one short code
		NormalizeURLs bool `env:"LINKS_NORMALIZE_URLS" env-default:"false" yaml:"normalizeURLs"`
	} `yaml:"links"`

	// Worker configures the background click recorder
	Worker struct {
		// MaxWorkers is the number of click jobs processed concurrently
		MaxWorkers int `env:"WORKER_MAX_WORKERS" env-default:"10" yaml:"maxWorkers"`
	} `yaml:"worker"`

	// Auth configures bearer token authentication of POST /shorten
	Auth struct {
		// PublicKey is the PEM encoded RSA public key verifying tokens; empty disables auth
		PublicKey string `env:"AUTH_PUBLIC_KEY" env-default:"" yaml:"publicKey"`
		// PrivateKey is the PEM encoded RSA private key used by the jwt command
		PrivateKey string `env:"AUTH_PRIVATE_KEY" env-default:"" yaml:"privateKey"`
	} `yaml:"auth"`

	// Client configures the shorten client used by the shorten command and the form page
	Client struct {
		// Endpoint is the base URL of the shortener service
		Endpoint string `env:"CLIENT_ENDPOINT" env-default:"http://localhost:8080" yaml:"endpoint"`
		// Token is an optional bearer token sent with every request
		Token string `env:"CLIENT_TOKEN" env-default:"" yaml:"token"`
		// Timeout bounds each request; 0 disables it
		Timeout time.Duration `env:"CLIENT_TIMEOUT" env-default:"10s" yaml:"timeout"`
	} `yaml:"client"`

	// GracefulShutdownTimeout is the maximum duration to wait for ongoing requests to complete during shutdown
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_TIMEOUT" env-default:"10s" yaml:"gracefulShutdownTimeout"` //nolint: lll
}

// Load receives the path for yaml config file and returns a filled Config struct.
// When the file does not exist only environment variables and defaults apply.
func Load(configPath string) (*Config, error) {
	var cfg Config

	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("could not read config from env: %w", err)
		}

		return &cfg, nil
	}

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("could not read config: %w", err)
	}

	return &cfg, nil
}
