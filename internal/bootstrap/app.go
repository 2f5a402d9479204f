package bootstrap

import (
	"context"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	appsvc "insight-console/internal/app"
	"insight-console/internal/backend"
	"insight-console/internal/cache"
	"insight-console/internal/config"
	"insight-console/internal/model"
	mysqlClient "insight-console/internal/platform/mysql"
	rabbitmqClient "insight-console/internal/platform/rabbitmq"
	redisClient "insight-console/internal/platform/redis"
	"insight-console/internal/region"
	"insight-console/internal/repository"
	"insight-console/internal/view"
	"insight-console/internal/worker"
)

type App struct {
	Config  *config.Config
	Backend *backend.Client
	Regions region.Store

	Uploads *appsvc.UploadHandler
	History *appsvc.HistoryLoader

	// Optional infrastructure; nil when disabled in config.
	MySQL       *gorm.DB
	Redis       *redis.Client
	MQConn      *amqp.Connection
	AuditRepo   *repository.UploadAuditRepository
	AuditWorker *worker.AuditPersistWorker

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

func NewWithConfig(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	html, err := view.NewHTML(loc)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:    cfg,
		Backend:   backend.NewClient(cfg.Backend.BaseURL, cfg.BackendTimeout()),
		StartedAt: time.Now(),
	}

	regionTTL := time.Duration(cfg.Redis.RegionTTLSeconds) * time.Second
	if cfg.Redis.Enabled {
		app.Redis, err = redisClient.New(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		app.Regions = cache.NewRegionCache(app.Redis, regionTTL)
	} else {
		app.Regions = region.NewMemoryStore(regionTTL)
	}

	if cfg.MySQL.Enabled {
		app.MySQL, err = mysqlClient.New(ctx, cfg.MySQLDSN())
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		app.AuditRepo = repository.NewUploadAuditRepository(app.MySQL)
	}

	var recorder appsvc.UploadAuditRecorder
	if cfg.RabbitMQ.Enabled {
		app.MQConn, err = rabbitmqClient.New(ctx, cfg.RabbitMQ.URL, cfg.App.Name)
		if err != nil {
			_ = app.Close()
			return nil, err
		}
		recorder = appsvc.RecorderFunc(rabbitmqClient.NewAuditPublisher(app.MQConn, cfg.RabbitMQ.AuditQueue).Publish)

		if app.AuditRepo != nil {
			app.AuditWorker = worker.NewAuditPersistWorker(app.MQConn, app.AuditRepo, cfg.RabbitMQ.AuditQueue)
			if err := app.AuditWorker.Start(ctx); err != nil {
				_ = app.Close()
				return nil, fmt.Errorf("start audit worker failed: %w", err)
			}
		} else {
			log.Printf("rabbitmq enabled without mysql, audits stay queued in %s", cfg.RabbitMQ.AuditQueue)
		}
	} else if app.AuditRepo != nil {
		repo := app.AuditRepo
		recorder = appsvc.RecorderFunc(func(ctx context.Context, audit model.UploadAudit) error {
			return repo.Create(&audit)
		})
	}

	app.Uploads = appsvc.NewUploadHandler(app.Backend, html, recorder)
	app.History = appsvc.NewHistoryLoader(app.Backend, html)
	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.MySQL != nil {
		sqlDB, err := a.MySQL.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
