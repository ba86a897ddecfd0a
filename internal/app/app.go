package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tokumei_bot/internal/config"
	"tokumei_bot/internal/logger"
	"tokumei_bot/internal/mongo"
	"tokumei_bot/internal/slack"
	"tokumei_bot/internal/slack/relay"
	"tokumei_bot/internal/slack/repository"
	"tokumei_bot/internal/slack/service"
	"tokumei_bot/internal/sqldb"
)

// App 应用服务容器
// 负责管理所有服务的生命周期（初始化、运行、关闭）
type App struct {
	MongoDB     *mongo.Client
	SQLDB       *sql.DB
	Submissions repository.SubmissionRepository
	Relay       *relay.Client
	Server      *slack.Server
}

// New 按顺序初始化存储、Slack 客户端与 webhook 服务
// 任何一步失败都会清理已初始化的服务并返回错误
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{}

	repo, err := app.initStore(ctx, cfg)
	if err != nil {
		_ = app.Close(context.Background())
		return nil, err
	}
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = app.Close(context.Background())
		return nil, fmt.Errorf("ensure submission schema failed: %w", err)
	}
	app.Submissions = repo
	logger.L().Infof("Submission store initialized: driver=%s", cfg.Store.Driver)

	app.Relay, err = relay.New(relay.Config{
		Token:  cfg.SlackBotToken,
		APIURL: cfg.SlackAPIURL,
	})
	if err != nil {
		_ = app.Close(context.Background())
		return nil, fmt.Errorf("init Slack client failed: %w", err)
	}

	svc := service.NewSubmissionService(app.Submissions, app.Relay)
	app.Server, err = slack.InitFromConfig(cfg, svc, app.Submissions)
	if err != nil {
		_ = app.Close(context.Background())
		return nil, fmt.Errorf("init webhook server failed: %w", err)
	}

	return app, nil
}

// initStore 根据驱动创建投稿存储
func (a *App) initStore(ctx context.Context, appCfg *config.Config) (repository.SubmissionRepository, error) {
	cfg := appCfg.Store
	if cfg.Driver == config.StoreDriverMongo {
		client, err := mongo.InitFromConfig(ctx, appCfg)
		if err != nil {
			return nil, fmt.Errorf("init MongoDB failed: %w", err)
		}
		a.MongoDB = client
		return repository.NewMongoSubmissionRepository(client.Database(), cfg.Table), nil
	}

	dialect := sqldb.Dialect(cfg.Driver)
	db, err := sqldb.Open(ctx, dialect, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("init %s failed: %w", cfg.Driver, err)
	}
	a.SQLDB = db
	return repository.NewSQLSubmissionRepository(db, dialect, repository.WithSQLTable(cfg.Table)), nil
}

// Run 启动 webhook 服务（阻塞）
func (a *App) Run() error {
	if a.Server == nil {
		return errors.New("webhook server is not initialized")
	}
	return a.Server.Start()
}

// Close 优雅关闭所有服务
// 应该在应用退出时调用，确保资源正确释放
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Server != nil {
		if err := a.Server.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop webhook server failed: %w", err))
		}
	}
	if a.SQLDB != nil {
		if err := a.SQLDB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close SQL database failed: %w", err))
		}
	}
	if a.MongoDB != nil {
		if err := a.MongoDB.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("close MongoDB failed: %w", err))
		}
	}
	return errors.Join(errs...)
}
