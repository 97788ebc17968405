package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

// InitRedis connects the list cache. It returns nil when REDIS_ADDR is unset.
func InitRedis() (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	redisDB, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		redisDB = 0
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       redisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}

	GetLogrusInstance().Infof("Redis initialized at %s", addr)
	return client, nil
}

func GetCacheTTL() time.Duration {
	return getEnvDuration("CACHE_TTL", 30*time.Second)
}

// InitKafkaWriter builds the registration event writer. It returns nil when KAFKA_BROKERS is unset.
func InitKafkaWriter() *kafka.Writer {
	brokers := getKafkaBrokers()
	if len(brokers) == 0 {
		return nil
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  GetKafkaTopic(),
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			GetLogrusInstance().Errorf("kafka: "+msg, args...)
		}),
	}

	GetLogrusInstance().Infof("Kafka writer initialized for %v", brokers)
	return writer
}

func getKafkaBrokers() []string {
	raw := os.Getenv("KAFKA_BROKERS")
	if raw == "" {
		return nil
	}
	var brokers []string
	for _, b := range strings.Split(raw, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func GetKafkaTopic() string {
	return getEnv("KAFKA_TOPIC", "student.registered")
}
