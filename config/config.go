package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Paystack  PaystackConfig
	Info      InfoConfig
	JWT       JWTConfig
	Kafka     KafkaConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	Env          string
	Debug        bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string
}

type DatabaseConfig struct {
	DSN             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type PaystackConfig struct {
	SecretKey string
	BaseURL   string
	Timeout   time.Duration
	// CallbackBaseURL e.g. https://pay.example.com; empty means derive from the incoming request
	CallbackBaseURL string
}

// InfoConfig is the metadata served by GET /.
type InfoConfig struct {
	Title       string
	Description string
	Version     string
	Email       string
	GithubURL   string
}

// JWTConfig guards the management API when Secret is set.
type JWTConfig struct {
	Secret string
	Issuer string
	Expiry time.Duration
}

type KafkaConfig struct {
	Brokers     []string
	StatusTopic string
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

func (c *Config) AuthEnabled() bool {
	return c.JWT.Secret != ""
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", "8000")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_READ_TIMEOUT", 10*time.Second)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	v.SetDefault("DATABASE_DSN", "payments:payments@tcp(localhost:3306)/payments?charset=utf8mb4&parseTime=True&loc=UTC")
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_CONN_MAX_LIFETIME", time.Hour)

	v.SetDefault("PAYSTACK_SECRET_KEY", "")
	v.SetDefault("PAYSTACK_BASE_URL", "https://api.paystack.co")
	v.SetDefault("PAYSTACK_TIMEOUT", 30*time.Second)
	v.SetDefault("PAYSTACK_CALLBACK_BASE_URL", "")

	v.SetDefault("API_TITLE", "Payment API")
	v.SetDefault("API_DESCRIPTION", "Payments, refunds, charges and history backed by Paystack")
	v.SetDefault("API_VERSION", "1.0.0")
	v.SetDefault("EMAIL", "")
	v.SetDefault("GITHUB_URL", "")

	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_ISSUER", "paymentapi")
	v.SetDefault("JWT_EXPIRY", 24*time.Hour)

	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_STATUS_TOPIC", "payment_status_updates")

	v.SetDefault("RATE_LIMIT_RPS", 5.0)
	v.SetDefault("RATE_LIMIT_BURST", 20)
}

// Load reads configuration from the environment, optionally seeded by a dotenv file.
// A missing envFile is not an error; the environment always wins over the file.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	if envFile != "" {
		v.SetConfigFile(envFile)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, err
			}
		}
	}
	v.AutomaticEnv()

	// DEBUG defaults to on everywhere but production
	debug := v.GetString("APP_ENV") != "production"
	if v.IsSet("DEBUG") {
		debug = v.GetBool("DEBUG")
	}

	return &Config{
		Server: ServerConfig{
			Host:         v.GetString("HOST"),
			Port:         v.GetString("SERVER_PORT"),
			Env:          v.GetString("APP_ENV"),
			Debug:        debug,
			ReadTimeout:  v.GetDuration("SERVER_READ_TIMEOUT"),
			WriteTimeout: v.GetDuration("SERVER_WRITE_TIMEOUT"),
			CORSOrigins:  splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			DSN:             v.GetString("DATABASE_DSN"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			ConnMaxLifetime: v.GetDuration("DB_CONN_MAX_LIFETIME"),
		},
		Paystack: PaystackConfig{
			SecretKey:       v.GetString("PAYSTACK_SECRET_KEY"),
			BaseURL:         strings.TrimRight(v.GetString("PAYSTACK_BASE_URL"), "/"),
			Timeout:         v.GetDuration("PAYSTACK_TIMEOUT"),
			CallbackBaseURL: strings.TrimRight(v.GetString("PAYSTACK_CALLBACK_BASE_URL"), "/"),
		},
		Info: InfoConfig{
			Title:       v.GetString("API_TITLE"),
			Description: v.GetString("API_DESCRIPTION"),
			Version:     v.GetString("API_VERSION"),
			Email:       v.GetString("EMAIL"),
			GithubURL:   v.GetString("GITHUB_URL"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("JWT_SECRET"),
			Issuer: v.GetString("JWT_ISSUER"),
			Expiry: v.GetDuration("JWT_EXPIRY"),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(v.GetString("KAFKA_BROKERS")),
			StatusTopic: v.GetString("KAFKA_STATUS_TOPIC"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
