package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/viper"
)

const (
	storeMongo    = "mongo"
	storePostgres = "postgres"
)

type Config struct {
	Port           string   `mapstructure:"PORT"`
	Environment    string   `mapstructure:"ENVIRONMENT"`
	Version        string   `mapstructure:"VERSION"`
	Secret         string   `mapstructure:"SECRET"`
	BcryptCost     int      `mapstructure:"BCRYPT_COST"`
	TrustedOrigins []string `mapstructure:"TRUSTED_ORIGINS"`

	StoreDriver string `mapstructure:"STORE_DRIVER"`

	MongoURI string `mapstructure:"MONGODB_URI"`
	MongoDB  string `mapstructure:"MONGODB_DB"`

	DBHost     string `mapstructure:"POSTGRES_HOST"`
	DBPort     string `mapstructure:"POSTGRES_PORT"`
	DBUser     string `mapstructure:"POSTGRES_USER"`
	DBPassword string `mapstructure:"POSTGRES_PASSWORD"`
	DBName     string `mapstructure:"POSTGRES_DB"`

	MQHost     string `mapstructure:"RABBITMQ_HOST"`
	MQPort     string `mapstructure:"RABBITMQ_PORT"`
	MQUser     string `mapstructure:"RABBITMQ_USER"`
	MQPassword string `mapstructure:"RABBITMQ_PASSWORD"`

	RateLimitEnabled bool    `mapstructure:"RATE_LIMIT_ENABLED"`
	RateLimitRPS     float64 `mapstructure:"RATE_LIMIT_RPS"`
	RateLimitBurst   int     `mapstructure:"RATE_LIMIT_BURST"`

	TLSCertFile string `mapstructure:"TLS_CERT_FILE"`
	TLSKeyFile  string `mapstructure:"TLS_KEY_FILE"`
}

var configDefaults = map[string]any{
	"PORT":               "3003",
	"ENVIRONMENT":        "development",
	"VERSION":            "1.0.0",
	"SECRET":             "",
	"BCRYPT_COST":        10,
	"TRUSTED_ORIGINS":    []string{},
	"STORE_DRIVER":       storeMongo,
	"MONGODB_URI":        "mongodb://localhost:27017",
	"MONGODB_DB":         "bloglist",
	"POSTGRES_HOST":      "localhost",
	"POSTGRES_PORT":      "5432",
	"POSTGRES_USER":      "postgres",
	"POSTGRES_PASSWORD":  "",
	"POSTGRES_DB":        "bloglist",
	"RABBITMQ_HOST":      "",
	"RABBITMQ_PORT":      "5672",
	"RABBITMQ_USER":      "guest",
	"RABBITMQ_PASSWORD":  "guest",
	"RATE_LIMIT_ENABLED": true,
	"RATE_LIMIT_RPS":     2.0,
	"RATE_LIMIT_BURST":   4,
	"TLS_CERT_FILE":      "",
	"TLS_KEY_FILE":       "",
}

// loadConfig reads the env file at path. Environment variables override the
// file and a missing file is not an error.
func loadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) validate() error {
	if c.Secret == "" {
		return errors.New("SECRET must be set")
	}

	switch c.StoreDriver {
	case storeMongo, storePostgres:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}

// RabbitMQURI is empty when no broker is configured.
func (c *Config) RabbitMQURI() string {
	if c.MQHost == "" {
		return ""
	}
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", c.MQUser, c.MQPassword, c.MQHost, c.MQPort)
}
