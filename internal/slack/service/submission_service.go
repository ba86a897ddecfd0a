package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tokumei_bot/internal/clock"
	"tokumei_bot/internal/logger"
	"tokumei_bot/internal/slack/models"
	"tokumei_bot/internal/slack/permalink"
	"tokumei_bot/internal/slack/relay"
	"tokumei_bot/internal/slack/repository"
)

// SubmissionServiceImpl 匿名投稿服务实现
type SubmissionServiceImpl struct {
	repo  repository.SubmissionRepository
	relay Relay
	now   func() time.Time
}

// Option 配置 SubmissionServiceImpl
type Option func(*SubmissionServiceImpl)

// WithNow 覆盖时间源（测试用）
func WithNow(now func() time.Time) Option {
	return func(s *SubmissionServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSubmissionService 创建投稿服务
func NewSubmissionService(repo repository.SubmissionRepository, r Relay, opts ...Option) *SubmissionServiceImpl {
	s := &SubmissionServiceImpl{
		repo:  repo,
		relay: r,
		now:   clock.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit 记录投稿 → 解析链接 → 转发
// 先持久化再转发；持久化失败直接返回，不再转发
func (s *SubmissionServiceImpl) Submit(ctx context.Context, info *SubmissionInfo) (*Result, error) {
	if info == nil {
		info = &SubmissionInfo{}
	}
	log := logger.FromContext(ctx)

	receivedAt := s.now()
	target := permalink.Parse(info.Text)

	submission := &models.Submission{
		ReceivedAt:  receivedAt,
		UserName:    info.UserName,
		UserID:      info.UserID,
		ChannelName: info.ChannelName,
		ChannelID:   info.ChannelID,
		Text:        info.Text,
	}
	id, err := s.repo.Append(ctx, submission)
	if err != nil {
		log.Errorf("Failed to record submission: channel_id=%s, user_id=%s, error=%v",
			info.ChannelID, info.UserID, err)
		return nil, fmt.Errorf("failed to record submission: %w", err)
	}
	log.Infof("Submission recorded: id=%d, channel_id=%s, user_id=%s", id, info.ChannelID, info.UserID)

	result := &Result{SubmissionID: id, Threaded: target.HasThread()}

	var ref relay.MessageRef
	if result.Threaded {
		ref, err = s.relay.PostThreadReply(ctx, target.ChannelID, target.Text, target.ThreadTS)
	} else {
		ref, err = s.relay.PostToChannel(ctx, info.ChannelID, info.Text)
	}
	if err != nil {
		result.RelayErr = asRelayError(err)
		log.Warnf("Failed to relay submission: id=%d, threaded=%v, reason=%s",
			id, result.Threaded, result.RelayErr.Reason)
		return result, nil
	}

	result.Message = ref
	log.Infof("Submission relayed: id=%d, threaded=%v, channel=%s, ts=%s",
		id, result.Threaded, ref.Channel, ref.Timestamp)
	return result, nil
}

// asRelayError 统一为 *relay.Error，非 relay 错误以错误文本作为原因码
func asRelayError(err error) *relay.Error {
	var relayErr *relay.Error
	if errors.As(err, &relayErr) {
		return relayErr
	}
	return &relay.Error{Reason: err.Error(), Err: err}
}
