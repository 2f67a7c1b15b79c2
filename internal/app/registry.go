package app

import (
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/assignment"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/auth"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/company"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/department"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/messaging/kafka"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/resettoken"
	"github.com/Studio-Butterfly-HQ/butter-chat-restapi/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
	kafkaWriter *kafkago.Writer,
) error {
	// --- Repositories ---
	authRepo := auth.NewRepository(gormDB)
	companyRepo := company.NewRepository(gormDB)
	departmentRepo := department.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	userRepo := user.NewRepository(gormDB)
	tokenRepo := resettoken.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)

	// --- Notification ---
	var notifier user.Notifier = user.NoopNotifier{}
	if kafkaWriter != nil {
		notifier = user.NewKafkaNotifier(kafkaWriter)
	}

	// --- Services ---
	authService := auth.NewService(gormDB, authRepo, companyRepo, outboxRepo)
	companyService := company.NewService(companyRepo)
	departmentService := department.NewService(gormDB, departmentRepo, rdb)
	assignmentService := assignment.NewService(gormDB, assignmentRepo, departmentRepo, userRepo)
	userService := user.NewService(
		gormDB,
		userRepo,
		companyRepo,
		departmentRepo,
		assignmentRepo,
		tokenRepo,
		notifier,
	)

	// --- Handlers ---
	authHandler := auth.NewHandler(authService)
	companyHandler := company.NewHandler(companyService)
	departmentHandler := department.NewHandler(departmentService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	userHandler := user.NewHandler(userService)

	resolver := user.NewIdentityResolver(userRepo)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		auth.RegisterRoutes(api, authHandler, resolver)
		company.RegisterRoutes(api, companyHandler, resolver)
		department.RegisterRoutes(api, departmentHandler, resolver)
		assignment.RegisterRoutes(api, assignmentHandler, resolver)
		user.RegisterRoutes(api, userHandler, resolver)
	}

	return nil
}
