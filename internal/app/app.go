package app

import (
	"os"

	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/middleware"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/shared/connection"

	"github.com/gin-gonic/gin"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// BuildApp wires infrastructure and modules onto the router. The broker is
// optional: without KAFKA_BROKER the provisioning notification degrades to
// a no-op instead of failing startup.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	rdb, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	var kafkaWriter *kafkago.Writer
	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		kafkaWriter, err = connection.ConnectKafkaWithRetry(broker, 5)
		if err != nil {
			return err
		}
		logger.Info("kafka connection established", zap.String("broker", broker))
	} else {
		logger.Warn("KAFKA_BROKER not set, provisioning notifications disabled")
	}

	router.Use(middleware.ContextLogger(zap.L()))

	return registerModules(router, gormDB, rdb, kafkaWriter)
}
