package slack

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"tokumei_bot/internal/config"
	"tokumei_bot/internal/logger"
	"tokumei_bot/internal/slack/service"
)

// Pinger 健康检查依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config HTTP 服务配置
type Config struct {
	Addr        string // 监听地址
	WebhookPath string // 投稿路径
}

// Server 匿名投稿 webhook 服务
type Server struct {
	httpServer  *http.Server
	service     service.SubmissionService
	store       Pinger
	webhookPath string
}

// New 创建 webhook 服务实例
func New(cfg Config, svc service.SubmissionService, store Pinger) (*Server, error) {
	if svc == nil {
		return nil, fmt.Errorf("submission service cannot be nil")
	}
	if cfg.WebhookPath == "" {
		cfg.WebhookPath = "/baasannya"
	}
	if err := config.ValidateWebhookPath(cfg.WebhookPath); err != nil {
		return nil, fmt.Errorf("invalid webhook path: %w", err)
	}

	s := &Server{
		service:     svc,
		store:       store,
		webhookPath: cfg.WebhookPath,
	}

	mux := http.NewServeMux()
	s.registerHandlers(mux)

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: withRequestID(withAccessLog(withRecover(mux))),
	}

	logger.L().Infof("Webhook server initialized: addr=%s, path=%s", cfg.Addr, cfg.WebhookPath)
	return s, nil
}

// InitFromConfig 从应用配置初始化 webhook 服务
func InitFromConfig(cfg *config.Config, svc service.SubmissionService, store Pinger) (*Server, error) {
	return New(Config{
		Addr:        cfg.HTTPAddr,
		WebhookPath: cfg.WebhookPath,
	}, svc, store)
}

// Handler 返回完整的 HTTP handler（含中间件）
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start 启动服务（阻塞式，应在 goroutine 中运行）
func (s *Server) Start() error {
	logger.L().Infof("Starting webhook server on %s...", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("webhook server failed: %w", err)
	}
	logger.L().Info("Webhook server stopped")
	return nil
}

// Stop 优雅关闭，等待进行中的请求完成
func (s *Server) Stop(ctx context.Context) error {
	logger.L().Info("Stopping webhook server...")
	return s.httpServer.Shutdown(ctx)
}
