package relay

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/slack-go/slack"
)

// ReasonRateLimited Slack 返回 429 时使用的原因码
const ReasonRateLimited = "ratelimited"

// MessageRef 已发送消息的位置
type MessageRef struct {
	Channel   string
	Timestamp string
}

// Error 转发失败，Reason 为 Slack 的机器可读错误码
type Error struct {
	Reason string
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("slack relay failed: %s", e.Reason)
}

func (e *Error) Unwrap() error { return e.Err }

// Config Slack 客户端配置
type Config struct {
	Token      string       // Bot Token
	APIURL     string       // 可选，覆盖 https://slack.com/api/
	HTTPClient *http.Client // 可选
}

// Client 基于 slack-go 的消息转发客户端，可并发使用
type Client struct {
	api *slack.Client
}

// New 创建 Slack 转发客户端
func New(cfg Config) (*Client, error) {
	token := strings.TrimSpace(cfg.Token)
	if token == "" {
		return nil, fmt.Errorf("slack bot token cannot be empty")
	}

	opts := []slack.Option{}
	if base := strings.TrimSpace(cfg.APIURL); base != "" {
		opts = append(opts, slack.OptionAPIURL(strings.TrimRight(base, "/")+"/"))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, slack.OptionHTTPClient(cfg.HTTPClient))
	}

	return &Client{api: slack.New(token, opts...)}, nil
}

// PostToChannel 向频道发送新消息
func (c *Client) PostToChannel(ctx context.Context, channelID, text string) (MessageRef, error) {
	return c.post(ctx, channelID, slack.MsgOptionText(text, false))
}

// PostThreadReply 在已有线程中回复
func (c *Client) PostThreadReply(ctx context.Context, channelID, text, threadTS string) (MessageRef, error) {
	return c.post(ctx, channelID, slack.MsgOptionText(text, false), slack.MsgOptionTS(threadTS))
}

func (c *Client) post(ctx context.Context, channelID string, opts ...slack.MsgOption) (MessageRef, error) {
	channel, ts, err := c.api.PostMessageContext(ctx, channelID, opts...)
	if err != nil {
		return MessageRef{}, &Error{Reason: reasonOf(err), Err: err}
	}
	return MessageRef{Channel: channel, Timestamp: ts}, nil
}

// reasonOf 从 slack-go 错误中提取原因码
func reasonOf(err error) string {
	var apiErr slack.SlackErrorResponse
	if errors.As(err, &apiErr) && apiErr.Err != "" {
		return apiErr.Err
	}
	var rle *slack.RateLimitedError
	if errors.As(err, &rle) {
		return ReasonRateLimited
	}
	return err.Error()
}
