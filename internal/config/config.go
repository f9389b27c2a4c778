package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

const (
	DefaultMongoURI    = "mongodb://localhost:27017/xpres"
	DefaultDatabase    = "xpres"
	DefaultExternalURL = "https://jsonplaceholder.typicode.com/todos/1"
	BackendDisk        = "disk"
	BackendMinIO       = "minio"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	Data      DataConfig
	External  ExternalConfig
	Receive   ReceiveConfig
	MinIO     MinIOConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// DataConfig locates the seed file, the received files and the browser UI.
type DataConfig struct {
	Dir       string
	PublicDir string
}

type ExternalConfig struct {
	DefaultURL string
	Timeout    time.Duration
}

// ReceiveConfig selects where POST /receive payloads are written.
type ReceiveConfig struct {
	Backend string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

type RateLimitConfig struct {
	Enabled       bool
	RPS           float64
	Burst         int
	UseRedis      bool
	WindowSeconds int
}

// LoadConfig loads configuration from environment variables and an optional .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	// the connection string is accepted under both common names
	_ = v.BindEnv("MONGO_URI", "MONGO_URI", "MONGODB_URI")

	v.SetDefault("PORT", "3000")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MONGO_URI", DefaultMongoURI)
	v.SetDefault("MONGO_TIMEOUT", 10)
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("PUBLIC_DIR", "public")
	v.SetDefault("EXTERNAL_DEFAULT_URL", DefaultExternalURL)
	v.SetDefault("EXTERNAL_TIMEOUT", 5)
	v.SetDefault("RECEIVE_BACKEND", BackendDisk)
	v.SetDefault("MINIO_BUCKET", "xpres-received")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 1)

	uri := v.GetString("MONGO_URI")
	database := v.GetString("MONGO_DATABASE")
	if database == "" {
		database = DatabaseFromURI(uri)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         v.GetString("PORT"),
			Host:         v.GetString("HOST"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		MongoDB: MongoDBConfig{
			URI:      uri,
			Database: database,
			Timeout:  time.Duration(v.GetInt("MONGO_TIMEOUT")) * time.Second,
		},
		Data: DataConfig{
			Dir:       v.GetString("DATA_DIR"),
			PublicDir: v.GetString("PUBLIC_DIR"),
		},
		External: ExternalConfig{
			DefaultURL: v.GetString("EXTERNAL_DEFAULT_URL"),
			Timeout:    time.Duration(v.GetInt("EXTERNAL_TIMEOUT")) * time.Second,
		},
		Receive: ReceiveConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString("RECEIVE_BACKEND"))),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
			Bucket:    v.GetString("MINIO_BUCKET"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       v.GetBool("RATE_LIMIT_ENABLED"),
			RPS:           v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         v.GetInt("RATE_LIMIT_BURST"),
			UseRedis:      v.GetBool("RATE_LIMIT_USE_REDIS"),
			WindowSeconds: v.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		LogLevel: v.GetString("LOG_LEVEL"),
	}

	if cfg.Receive.Backend != BackendDisk && cfg.Receive.Backend != BackendMinIO {
		return nil, fmt.Errorf("RECEIVE_BACKEND must be %q or %q, got %q", BackendDisk, BackendMinIO, cfg.Receive.Backend)
	}
	if cfg.Receive.Backend == BackendMinIO && cfg.MinIO.Endpoint == "" {
		return nil, fmt.Errorf("RECEIVE_BACKEND=minio requires MINIO_ENDPOINT")
	}
	if cfg.External.Timeout <= 0 {
		cfg.External.Timeout = 5 * time.Second
	}
	if cfg.MongoDB.Timeout <= 0 {
		cfg.MongoDB.Timeout = 10 * time.Second
	}

	return cfg, nil
}

// DatabaseFromURI returns the database named in the connection string path,
// or DefaultDatabase when the URI names none or does not parse.
func DatabaseFromURI(uri string) string {
	cs, err := connstring.Parse(uri)
	if err != nil || cs.Database == "" {
		return DefaultDatabase
	}
	return cs.Database
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}
