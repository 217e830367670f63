package bootstrap

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"vidshare/internal/config"
	"vidshare/internal/model"
	mysqlClient "vidshare/internal/platform/mysql"
	rabbitmqClient "vidshare/internal/platform/rabbitmq"
	redisClient "vidshare/internal/platform/redis"
	"vidshare/internal/repository"
	"vidshare/internal/storage"
	"vidshare/internal/worker"
)

// App holds every process-wide handle: opened here at start, closed in
// Close() at shutdown. Nothing else in the codebase owns a connection.
type App struct {
	Config     *config.Config
	DB         *gorm.DB
	Redis      *redis.Client
	MQConn     *amqp.Connection
	Store      *storage.DiskStore
	ViewWorker *worker.ViewCountWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	db, err := mysqlClient.New(ctx, cfg.MySQLDSN())
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Video{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	diskStore, err := storage.NewDiskStore(cfg.Storage.UploadDir)
	if err != nil {
		return nil, err
	}

	redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, err
	}

	mqConn, err := rabbitmqClient.New(ctx, cfg.RabbitMQ.URL)
	if err != nil {
		return nil, err
	}

	videoRepo := repository.NewVideoRepository(db)
	viewWorker := worker.NewViewCountWorker(mqConn, videoRepo, cfg.RabbitMQ.ViewCountQueue)
	if err := viewWorker.Start(ctx); err != nil {
		return nil, fmt.Errorf("start view count worker failed: %w", err)
	}

	return &App{
		Config:     cfg,
		DB:         db,
		Redis:      redisCli,
		MQConn:     mqConn,
		Store:      diskStore,
		ViewWorker: viewWorker,
		StartedAt:  time.Now(),
	}, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.ViewWorker != nil {
		a.ViewWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
