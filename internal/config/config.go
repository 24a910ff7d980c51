package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Stripe   StripeConfig   `mapstructure:"stripe"`
	Booking  BookingConfig  `mapstructure:"booking"`
	S3       S3Config       `mapstructure:"s3"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// JWTConfig defines JWT specific configuration
type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	Expiration time.Duration `mapstructure:"expiration"`
}

// StripeConfig holds payment gateway credentials and charge defaults.
type StripeConfig struct {
	SecretKey string `mapstructure:"secret_key"`
	Currency  string `mapstructure:"currency"`
}

// BookingConfig controls the slot reservation lifecycle.
type BookingConfig struct {
	// ReservationTTL is how long a slot stays held after a payment intent is
	// created before the sweeper releases it.
	ReservationTTL time.Duration `mapstructure:"reservation_ttl"`
	// SweepInterval is how often expired reservations are released.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// S3Config configures the media (profile/class image) object store.
type S3Config struct {
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	// Env override for nested keys e.g. server.address -> SERVER_ADDRESS
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("database.uri", "mongodb://localhost:27017")
	viper.SetDefault("database.name", "fitnessTracker")
	viper.SetDefault("jwt.expiration", "1h")
	viper.SetDefault("stripe.currency", "usd")
	viper.SetDefault("booking.reservation_ttl", "15m")
	viper.SetDefault("booking.sweep_interval", "1m")
	viper.SetDefault("s3.use_ssl", true)

	err = viper.ReadInConfig()
	// A missing config file is fine; env vars and defaults still apply.
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		err = nil
	} else if err != nil {
		return
	}

	err = viper.Unmarshal(&config)
	if err != nil {
		return
	}

	return config, nil
}
