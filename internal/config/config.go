package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/database"
	"jobboard/internal/models"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the typed view of the settings needed to assemble the app.
// Token settings are not copied here: the token issuer reads them from the
// viper instance on every call.
type Config struct {
	AppPort  string
	Database DatabaseConfig
	RabbitMQ RabbitMQConfig
	Redis    RedisConfig
	MinIO    MinIOConfig
	Auth     AuthConfig
	Jobs     JobsConfig
	Server   ServerConfig
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type RabbitMQConfig struct {
	URL      string
	Exchange string
	Queue    string
}

type RedisConfig struct {
	Addr     string
	Password string
	Prefix   string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	URLExpiry time.Duration
}

type AuthConfig struct {
	MaxLoginAttempts       int
	ResetAttemptsOnSuccess bool
}

type JobsConfig struct {
	Eligibility models.EligibilityPolicy
}

type ServerConfig struct {
	ProxyHeader string
}

// New builds a viper instance from defaults, an optional .env file, an
// optional config file and the environment, in increasing precedence.
// Environment names are the keys upper-cased with dots replaced by
// underscores, e.g. JWTKEY_SECRET.
func New(configFile string) (*viper.Viper, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", ":8080")
	v.SetDefault("database.driver", database.DriverPostgres)
	v.SetDefault("database.dsn", "host=localhost user=postgres password=postgres dbname=jobboard port=5432 sslmode=disable")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.exchange", "jobboard.events")
	v.SetDefault("rabbitmq.queue", "jobboard.events.audit")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.prefix", "jobboard:login-attempts")
	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "jobboard-cvs")
	v.SetDefault("minio.use_ssl", false)
	v.SetDefault("minio.url_expiry", "15m")
	v.SetDefault("auth.max_login_attempts", 3)
	v.SetDefault("auth.reset_attempts_on_success", false)
	v.SetDefault("jobs.eligibility", "legacy")
	v.SetDefault("server.proxy_header", "")
}

// FromViper reads the typed settings out of v.
func FromViper(v *viper.Viper) (*Config, error) {
	eligibility, err := models.EligibilityByName(strings.TrimSpace(v.GetString("jobs.eligibility")))
	if err != nil {
		return nil, err
	}
	driver := v.GetString("database.driver")
	if driver != database.DriverPostgres && driver != database.DriverSQLite {
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
	return &Config{
		AppPort: v.GetString("app.port"),
		Database: DatabaseConfig{
			Driver: driver,
			DSN:    v.GetString("database.dsn"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:      v.GetString("rabbitmq.url"),
			Exchange: v.GetString("rabbitmq.exchange"),
			Queue:    v.GetString("rabbitmq.queue"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			Prefix:   v.GetString("redis.prefix"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("minio.endpoint"),
			AccessKey: v.GetString("minio.access_key"),
			SecretKey: v.GetString("minio.secret_key"),
			Bucket:    v.GetString("minio.bucket"),
			UseSSL:    v.GetBool("minio.use_ssl"),
			URLExpiry: v.GetDuration("minio.url_expiry"),
		},
		Auth: AuthConfig{
			MaxLoginAttempts:       v.GetInt("auth.max_login_attempts"),
			ResetAttemptsOnSuccess: v.GetBool("auth.reset_attempts_on_success"),
		},
		Jobs: JobsConfig{
			Eligibility: eligibility,
		},
		Server: ServerConfig{
			ProxyHeader: v.GetString("server.proxy_header"),
		},
	}, nil
}
