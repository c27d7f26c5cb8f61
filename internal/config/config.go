package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env file if it exists (silent fail if not)
	_ = godotenv.Load()
}

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Server ServerConfig
	App    AppConfig
	Admin  AdminConfig
	Store  StoreConfig
	Bridge BridgeConfig
	Launch LaunchConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port            int           `envconfig:"PORT" default:"3000"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"0s"` // SSE streams stay open
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Name        string `envconfig:"APP_NAME" default:"ironline-site"`
	Environment string `envconfig:"APP_ENV" default:"development"`
	Debug       bool   `envconfig:"APP_DEBUG" default:"false"`
	Version     string `envconfig:"APP_VERSION" default:"1.0.0"`
	StaticDir   string `envconfig:"STATIC_DIR" default:"./public"`
}

// AdminConfig holds the admin gate settings.
// PasswordHash (bcrypt) wins over Password when both are set.
type AdminConfig struct {
	Password       string        `envconfig:"ADMIN_PASSWORD" default:""`
	PasswordHash   string        `envconfig:"ADMIN_PASSWORD_HASH" default:""`
	SessionTTL     time.Duration `envconfig:"ADMIN_SESSION_TTL" default:"1h"`
	LoginRate      float64       `envconfig:"ADMIN_LOGIN_RATE" default:"0.2"` // attempts per second per IP
	LoginBurst     int           `envconfig:"ADMIN_LOGIN_BURST" default:"5"`
	HotkeySequence []string      `envconfig:"ADMIN_HOTKEY_SEQUENCE" default:""`
	GateIdle       time.Duration `envconfig:"ADMIN_GATE_IDLE_TIMEOUT" default:"30m"`
}

// StoreConfig holds key-value store settings backing the content store and sessions.
type StoreConfig struct {
	Type       string        `envconfig:"STORE_TYPE" default:"memory"` // memory or redis
	ContentTTL time.Duration `envconfig:"STORE_CONTENT_TTL" default:"0s"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
	RedisPrefix   string `envconfig:"REDIS_PREFIX" default:"ironline"`
}

// BridgeConfig holds persistence bridge settings.
type BridgeConfig struct {
	Backend string `envconfig:"BRIDGE_BACKEND" default:"file"` // file, sqlite, postgres, mysql, mongodb, gcs
	DataDir string `envconfig:"DATA_DIR" default:"./data"`

	WriteBehind   bool          `envconfig:"BRIDGE_WRITE_BEHIND" default:"false"`
	FlushInterval time.Duration `envconfig:"BRIDGE_FLUSH_INTERVAL" default:"30s"`
	SequenceGuard bool          `envconfig:"BRIDGE_SEQUENCE_GUARD" default:"true"`

	// AutoPublish copies content store changes to the bridge; 0 disables it.
	AutoPublishInterval time.Duration `envconfig:"BRIDGE_AUTO_PUBLISH_INTERVAL" default:"0s"`
	// PullOnStart loads published content from the bridge at startup.
	PullOnStart bool `envconfig:"BRIDGE_PULL_ON_START" default:"true"`

	SQLitePath string `envconfig:"BRIDGE_SQLITE_PATH" default:"./data/content.db"`

	// PostgreSQL settings
	PGHost     string `envconfig:"BRIDGE_PG_HOST" default:"localhost"`
	PGPort     int    `envconfig:"BRIDGE_PG_PORT" default:"5432"`
	PGName     string `envconfig:"BRIDGE_PG_NAME" default:"ironline"`
	PGUser     string `envconfig:"BRIDGE_PG_USER" default:"postgres"`
	PGPassword string `envconfig:"BRIDGE_PG_PASS" default:""`
	PGSSLMode  string `envconfig:"BRIDGE_PG_SSLMODE" default:"disable"`

	// MySQL settings
	MySQLHost     string `envconfig:"BRIDGE_MYSQL_HOST" default:"localhost"`
	MySQLPort     int    `envconfig:"BRIDGE_MYSQL_PORT" default:"3306"`
	MySQLName     string `envconfig:"BRIDGE_MYSQL_NAME" default:"ironline"`
	MySQLUser     string `envconfig:"BRIDGE_MYSQL_USER" default:"root"`
	MySQLPassword string `envconfig:"BRIDGE_MYSQL_PASS" default:""`

	// MongoDB settings
	MongoURI        string `envconfig:"MONGODB_URI" default:""`
	MongoDatabase   string `envconfig:"MONGODB_DATABASE" default:"ironline"`
	MongoCollection string `envconfig:"MONGODB_COLLECTION" default:"content_blobs"`

	// Google Cloud Storage settings
	GCSBucket      string `envconfig:"GCS_BUCKET" default:""`
	GCSPrefix      string `envconfig:"GCS_PREFIX" default:"data/"`
	GCSCredentials string `envconfig:"GCS_CREDENTIALS_FILE" default:""`
}

// LaunchConfig holds launch countdown and redirect settings.
type LaunchConfig struct {
	ReleaseDate      string        `envconfig:"LAUNCH_RELEASE_DATE" default:""`
	Route            string        `envconfig:"LAUNCH_ROUTE" default:"/launch"`
	AdminRoute       string        `envconfig:"ADMIN_ROUTE" default:"/admin"`
	SettingsType     string        `envconfig:"LAUNCH_SETTINGS_TYPE" default:"launch-settings"`
	SettingsCacheTTL time.Duration `envconfig:"LAUNCH_SETTINGS_CACHE_TTL" default:"5s"`
	TickInterval     time.Duration `envconfig:"LAUNCH_TICK_INTERVAL" default:"1s"`
}

// PostgresDSN returns the PostgreSQL connection string.
func (b *BridgeConfig) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		b.PGUser, b.PGPassword, b.PGHost, b.PGPort, b.PGName, b.PGSSLMode)
}

// MySQLDSN returns the MySQL data source name.
func (b *BridgeConfig) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
		b.MySQLUser, b.MySQLPassword, b.MySQLHost, b.MySQLPort, b.MySQLName)
}

// Address returns the server address in host:port format.
func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// RedisAddress returns the Redis address in host:port format.
func (c *StoreConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode.
func (a *AppConfig) IsDevelopment() bool {
	return a.Environment == "development"
}

// IsProduction returns true if running in production mode.
func (a *AppConfig) IsProduction() bool {
	return a.Environment == "production"
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	return &cfg, nil
}

// MustLoad loads configuration or panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
