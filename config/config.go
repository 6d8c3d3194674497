package config

import (
	"fmt"
	"net/url"

	"github.com/caarlos0/env/v11"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type (
	APP struct {
		Name               string `env:"SERVICE_NAME" envDefault:"userregistry"`
		Host               string `env:"SERVICE_HOST"`
		Port               string `env:"SERVICE_PORT" envDefault:"8080"`
		Env                string `env:"SERVICE_ENV"`
		Storage            string `env:"SERVICE_STORAGE" envDefault:"postgres"`
		PasswordHashCost   int    `env:"SERVICE_PASSWORD_HASH_COST" envDefault:"10"`
		ShutdownTimeoutSec int    `env:"SERVICE_SHUTDOWN_TIMEOUT_SEC" envDefault:"5"`
	}
	DB struct {
		User     string `env:"POSTGRES_USER"`
		Password string `env:"POSTGRES_PASSWORD"`
		Name     string `env:"POSTGRES_DB"`
		Host     string `env:"POSTGRES_HOST"`
		Port     string `env:"POSTGRES_PORT" envDefault:"5432"`
	}
	MQ struct {
		Enabled      bool   `env:"RABBITMQ_ENABLED" envDefault:"false"`
		User         string `env:"RABBITMQ_USER"`
		Password     string `env:"RABBITMQ_PASSWORD"`
		Vhost        string `env:"RABBITMQ_VHOST"`
		Host         string `env:"RABBITMQ_HOST"`
		AmqpPort     string `env:"RABBITMQ_AMQP_PORT" envDefault:"5672"`
		Exchange     string `env:"RABBITMQ_EXCHANGE" envDefault:"users"`
		ExchangeType string `env:"RABBITMQ_EXCHANGE_TYPE" envDefault:"topic"`
		QueueName    string `env:"RABBITMQ_QUEUE_NAME" envDefault:"users.audit"`
	}
	OTEL struct {
		Enabled  bool   `env:"OTEL_ENABLED" envDefault:"false"`
		Endpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
		Insecure bool   `env:"OTEL_EXPORTER_OTLP_INSECURE" envDefault:"true"`
	}

	Config struct {
		App  APP
		DB   DB
		MQ   MQ
		OTEL OTEL
	}
)

func Load() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	switch cfg.App.Storage {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("unknown storage %q, want %q or %q", cfg.App.Storage, StorageMemory, StoragePostgres)
	}

	return cfg, nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
