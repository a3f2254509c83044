package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL            string        `mapstructure:"url"`
	StreamName     string        `mapstructure:"stream_name"`
	MaxReconnects  int           `mapstructure:"max_reconnects"`
	ReconnectWait  time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName string        `mapstructure:"connection_name"`
}

// EthereumConfig holds chain connectivity and signing configuration
type EthereumConfig struct {
	RPCURL          string        `mapstructure:"rpc_url"`
	WebSocketURL    string        `mapstructure:"websocket_url"`
	ChainID         int64         `mapstructure:"chain_id"`
	ContractAddress string        `mapstructure:"contract_address"`
	SignerKey       string        `mapstructure:"signer_key"`
	Confirmations   uint64        `mapstructure:"confirmations"`
	FinalityTimeout time.Duration `mapstructure:"finality_timeout"`
	GasLimit        uint64        `mapstructure:"gas_limit"`
	MinSignerWei    string        `mapstructure:"min_signer_wei"`
}

// LumaConfig holds the event source API configuration
type LumaConfig struct {
	APIURL      string        `mapstructure:"api_url"`
	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	MaxRetries  int           `mapstructure:"max_retries"`
}

// SyncConfig holds reconciliation cadence and caps
type SyncConfig struct {
	EventsInterval    time.Duration `mapstructure:"events_interval"`
	CheckInsInterval  time.Duration `mapstructure:"checkins_interval"`
	StaggerDelay      time.Duration `mapstructure:"stagger_delay"`
	MaxEventsPerRun   int           `mapstructure:"max_events_per_run"`
	MaxCheckInsPerRun int           `mapstructure:"max_checkins_per_run"`
	EventBatchSize    int           `mapstructure:"event_batch_size"`
	CheckInBatchSize  int           `mapstructure:"checkin_batch_size"`
	BatchDelay        time.Duration `mapstructure:"batch_delay"`
}

// QueueConfig holds mint queue drain configuration
type QueueConfig struct {
	DrainInterval time.Duration `mapstructure:"drain_interval"`
	BatchSize     int           `mapstructure:"batch_size"`
	ItemDelay     time.Duration `mapstructure:"item_delay"`
	MaxAttempts   int           `mapstructure:"max_attempts"`
}

// BreakerConfig holds circuit breaker tuning
type BreakerConfig struct {
	FailureThreshold int           `mapstructure:"failure_threshold"`
	CoolDown         time.Duration `mapstructure:"cool_down"`
	MaxEntries       int           `mapstructure:"max_entries"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds
}

// AuthConfig holds admin API authentication configuration
type AuthConfig struct {
	APIKeys []string `mapstructure:"api_keys"`
}

// Config holds configuration for the checkmintd daemon
type Config struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Luma       LumaConfig     `mapstructure:"luma"`
	Sync       SyncConfig     `mapstructure:"sync"`
	Queue      QueueConfig    `mapstructure:"queue"`
	Breaker    BreakerConfig  `mapstructure:"breaker"`
	Server     ServerConfig   `mapstructure:"server"`
	Auth       AuthConfig     `mapstructure:"auth"`
}

// Load loads configuration for checkmintd from config file and environment
func Load(configFile string, envPath string) (*Config, error) {
	v := configureViper(configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 10)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.conn_max_idle_time", "10m")
	v.SetDefault("nats.stream_name", "NOTIFY")
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.connection_name", "checkmintd")
	v.SetDefault("ethereum.chain_id", 84532)
	v.SetDefault("ethereum.confirmations", 1)
	v.SetDefault("ethereum.finality_timeout", "2m")
	v.SetDefault("ethereum.gas_limit", 500000)
	v.SetDefault("luma.api_url", "https://api.lu.ma/public/v1")
	v.SetDefault("luma.http_timeout", "30s")
	v.SetDefault("luma.max_retries", 3)
	v.SetDefault("sync.events_interval", "10s")
	v.SetDefault("sync.checkins_interval", "5s")
	v.SetDefault("sync.stagger_delay", "2s")
	v.SetDefault("sync.max_events_per_run", 200)
	v.SetDefault("sync.max_checkins_per_run", 500)
	v.SetDefault("sync.event_batch_size", 3)
	v.SetDefault("sync.checkin_batch_size", 2)
	v.SetDefault("sync.batch_delay", "1s")
	v.SetDefault("queue.drain_interval", "3s")
	v.SetDefault("queue.batch_size", 10)
	v.SetDefault("queue.item_delay", "1s")
	v.SetDefault("queue.max_attempts", 3)
	v.SetDefault("breaker.failure_threshold", 5)
	v.SetDefault("breaker.cool_down", "5m")
	v.SetDefault("breaker.max_entries", 1024)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
		} else {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if cfg.Database.Host == "" {
		return nil, errors.New("database.host is required")
	}
	if cfg.Database.DBName == "" {
		return nil, errors.New("database.dbname is required")
	}
	if cfg.Ethereum.RPCURL == "" {
		return nil, errors.New("ethereum.rpc_url is required")
	}
	if cfg.Ethereum.ContractAddress == "" {
		return nil, errors.New("ethereum.contract_address is required")
	}
	if cfg.Ethereum.SignerKey == "" {
		return nil, errors.New("ethereum.signer_key is required")
	}

	return &cfg, nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(configFile string, envPath string) *viper.Viper {
	v := viper.New()

	loadEnv(envPath)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("cmd/checkmintd/")
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("CHECKMINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables.
// This is required for viper to map env vars to config struct fields when
// no config file exists.
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.websocket_url",
		"ethereum.chain_id",
		"ethereum.contract_address",
		"ethereum.signer_key",
		"ethereum.confirmations",
		"ethereum.finality_timeout",
		"ethereum.gas_limit",
		"ethereum.min_signer_wei",
		// Luma
		"luma.api_url",
		"luma.http_timeout",
		"luma.max_retries",
		// Sync
		"sync.events_interval",
		"sync.checkins_interval",
		"sync.stagger_delay",
		"sync.max_events_per_run",
		"sync.max_checkins_per_run",
		"sync.event_batch_size",
		"sync.checkin_batch_size",
		"sync.batch_delay",
		// Queue
		"queue.drain_interval",
		"queue.batch_size",
		"queue.item_delay",
		"queue.max_attempts",
		// Breaker
		"breaker.failure_threshold",
		"breaker.cool_down",
		"breaker.max_entries",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		// Auth
		"auth.api_keys",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string) {
	envFiles := []string{".env", ".env.local"}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}
