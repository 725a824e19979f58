package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	// SQLite Configuration (inventory catalog). Empty path selects the in-memory catalog.
	SQLitePath string
	// JWT Configuration
	JWTSecret     string
	JWTExpiration int // Token lifetime in seconds
	// Redis Configuration (cart store, idempotency records and store listing cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	// Cart Configuration
	CartTTL        int // Inactivity expiry in seconds, reset on every add
	CartMaxRetries int // Optimistic transaction attempts per cart mutation
	// Store listing cache (optional)
	CacheTTL int  // Cache TTL in seconds
	UseCache bool // Whether to cache GET /view/store
	// Kafka Configuration (optional)
	KafkaBrokers    []string
	KafkaTopicCart  string
	KafkaTopicItems string
	KafkaGroupID    string
	KafkaAcks       string
	KafkaRetries    int
	UseKafka        bool
}

func Load() *Config {
	// .env file is optional, continue with environment variables
	_ = godotenv.Load()

	// Parse Kafka brokers (comma-separated)
	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9093"), ",")
	for i, broker := range kafkaBrokers {
		kafkaBrokers[i] = strings.TrimSpace(broker)
	}

	return &Config{
		Port:        getEnv("PORT", "8082"),
		Environment: getEnv("ENVIRONMENT", "development"),
		SQLitePath:  getEnvAllowEmpty("SQLITE_PATH", "./inventory.db"),
		// JWT Configuration
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production-min-32-chars"),
		JWTExpiration: getEnvAsInt("JWT_EXPIRATION", 600), // 10 minutes default
		// Redis Configuration
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),
		// Cart Configuration
		CartTTL:        getEnvAsInt("CART_TTL", 86400), // 24 hours
		CartMaxRetries: getEnvAsInt("CART_MAX_RETRIES", 10),
		// Store listing cache
		CacheTTL: getEnvAsInt("CACHE_TTL", 300),    // 5 minutes default
		UseCache: getEnvAsBool("USE_CACHE", false), // Cache is optional, default false
		// Kafka Configuration
		KafkaBrokers:    kafkaBrokers,
		KafkaTopicCart:  getEnv("KAFKA_TOPIC_CART", "cart.events"),
		KafkaTopicItems: getEnv("KAFKA_TOPIC_ITEMS", "inventory.items"),
		KafkaGroupID:    getEnv("KAFKA_GROUP_ID", "cart-service"),
		KafkaAcks:       getEnv("KAFKA_ACKS", "all"),
		KafkaRetries:    getEnvAsInt("KAFKA_RETRIES", 3),
		UseKafka:        getEnvAsBool("USE_KAFKA", false), // Kafka is optional, default false
	}
}

// CartExpiry returns the sliding cart expiry as a duration
func (c *Config) CartExpiry() time.Duration {
	return time.Duration(c.CartTTL) * time.Second
}

// TokenLifetime returns the JWT lifetime as a duration
func (c *Config) TokenLifetime() time.Duration {
	return time.Duration(c.JWTExpiration) * time.Second
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return strings.ToLower(value) == "true" || value == "1"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty keeps an explicitly empty value instead of falling back to the default
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return result
}
