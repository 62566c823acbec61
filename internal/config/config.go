package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is read once at startup. Every integration with an empty endpoint is
// switched off.
type Config struct {
	Port           string        `envconfig:"PORT" default:"8080"`
	GinMode        string        `envconfig:"GIN_MODE" default:"release"`
	LogLevel       string        `envconfig:"LOG_LEVEL" default:"info"`
	SeedData       bool          `envconfig:"SEED_DATA" default:"true"`
	StrictNotFound bool          `envconfig:"STRICT_NOT_FOUND" default:"false"`
	CORSOrigins    []string      `envconfig:"CORS_ORIGINS" default:"*"`
	CheckoutDelay  time.Duration `envconfig:"CHECKOUT_DELAY" default:"1500ms"`

	Admin     AdminConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Elastic   ElasticConfig
	MinIO     MinIOConfig
	Scylla    ScyllaConfig
	Kafka     KafkaConfig
	SMTP      SMTPConfig
	Gemini    GeminiConfig
}

type AdminConfig struct {
	Username     string        `envconfig:"ADMIN_USERNAME" default:"admin"`
	Password     string        `envconfig:"ADMIN_PASSWORD" default:"techplug"`
	PasswordHash string        `envconfig:"ADMIN_PASSWORD_HASH"`
	JWTSecret    string        `envconfig:"JWT_SECRET" default:"super_secret"`
	JWTTTL       time.Duration `envconfig:"JWT_TTL" default:"24h"`
}

type RateLimitConfig struct {
	Cart int `envconfig:"CART_RATE_LIMIT" default:"20"`
	API  int `envconfig:"API_RATE_LIMIT" default:"100"`
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST"`
	Password string `envconfig:"REDIS_PASSWORD"`
}

type ElasticConfig struct {
	URL      string `envconfig:"ELASTIC_URL"`
	User     string `envconfig:"ELASTIC_USER"`
	Password string `envconfig:"ELASTIC_PASSWORD"`
	Index    string `envconfig:"ELASTIC_INDEX" default:"products"`
}

type MinIOConfig struct {
	Endpoint  string `envconfig:"MINIO_ENDPOINT"`
	AccessKey string `envconfig:"MINIO_ACCESS_KEY"`
	SecretKey string `envconfig:"MINIO_SECRET_KEY"`
	Bucket    string `envconfig:"MINIO_BUCKET" default:"product-images"`
	UseSSL    bool   `envconfig:"MINIO_USE_SSL" default:"false"`
	PublicURL string `envconfig:"MINIO_PUBLIC_URL"`
}

type ScyllaConfig struct {
	Hosts    []string `envconfig:"SCYLLA_HOSTS"`
	Keyspace string   `envconfig:"SCYLLA_KEYSPACE" default:"techplug"`
	Username string   `envconfig:"SCYLLA_USERNAME"`
	Password string   `envconfig:"SCYLLA_PASSWORD"`
}

type KafkaConfig struct {
	Brokers    []string `envconfig:"KAFKA_BROKERS"`
	OrderTopic string   `envconfig:"KAFKA_ORDER_TOPIC" default:"order-events"`
}

type SMTPConfig struct {
	Host     string `envconfig:"SMTP_HOST"`
	Port     int    `envconfig:"SMTP_PORT" default:"587"`
	Username string `envconfig:"SMTP_USERNAME"`
	Password string `envconfig:"SMTP_PASSWORD"`
	From     string `envconfig:"MAIL_FROM" default:"orders@techplug.co.za"`
}

type GeminiConfig struct {
	APIKey string `envconfig:"GEMINI_API_KEY"`
	Model  string `envconfig:"GEMINI_MODEL" default:"gemini-3-flash-preview"`
}

// Load reads .env when present and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	return FromEnv()
}

// FromEnv parses the process environment only.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)
	cfg.Scylla.Hosts = trimAll(cfg.Scylla.Hosts)
	cfg.Kafka.Brokers = trimAll(cfg.Kafka.Brokers)
	return &cfg, nil
}

func trimAll(values []string) []string {
	out := values[:0]
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
