package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	// SQLite backing store
	SQLitePath string

	// Payment gateway
	GatewayMode         string // "simulator" or "remote"
	GatewayBaseURL      string
	GatewayCommerceCode string
	GatewayAPIKey       string
	GatewayTimeoutMs    int
	GatewayMaxRetries   int

	// Checkout tuning
	LowStockThreshold int
	SimAuthCode       string
	PublicBaseURL     string
	USDRate           float64

	// Redis read cache
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka bridge for low-stock events
	KafkaBrokers       []string
	KafkaTopicLowStock string
	KafkaClientID      string

	// Catalog ingestion service
	GRPCPort string

	SeedDemoData bool
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	kafkaBrokersStr := getEnv("KAFKA_BROKERS", "")
	var kafkaBrokers []string
	if kafkaBrokersStr != "" {
		kafkaBrokers = strings.Split(kafkaBrokersStr, ",")
		for i, broker := range kafkaBrokers {
			kafkaBrokers[i] = strings.TrimSpace(broker)
		}
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		SQLitePath: getEnv("SQLITE_PATH", "./data/inventario.db"),

		GatewayMode:         getEnv("GATEWAY_MODE", "simulator"),
		GatewayBaseURL:      getEnv("GATEWAY_BASE_URL", "https://webpay3gint.transbank.cl"),
		GatewayCommerceCode: getEnv("GATEWAY_COMMERCE_CODE", "597055555532"),
		GatewayAPIKey:       getEnv("GATEWAY_API_KEY", ""),
		GatewayTimeoutMs:    getEnvAsInt("GATEWAY_TIMEOUT_MS", 5000),
		GatewayMaxRetries:   getEnvAsInt("GATEWAY_MAX_RETRIES", 3),

		LowStockThreshold: getEnvAsInt("LOW_STOCK_THRESHOLD", 10),
		SimAuthCode:       getEnv("SIM_AUTH_CODE", "123456"),
		PublicBaseURL:     getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		USDRate:           getEnvAsFloat("USD_RATE_CLP", 900),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		KafkaBrokers:       kafkaBrokers,
		KafkaTopicLowStock: getEnv("KAFKA_TOPIC_LOW_STOCK", "inventory.low_stock"),
		KafkaClientID:      getEnv("KAFKA_CLIENT_ID", "storefront"),

		GRPCPort: getEnv("GRPC_PORT", "50051"),

		SeedDemoData: getEnv("SEED_DEMO_DATA", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return result
}
