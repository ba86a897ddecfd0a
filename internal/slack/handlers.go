package slack

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"tokumei_bot/internal/config"
	"tokumei_bot/internal/logger"
	"tokumei_bot/internal/slack/service"

	slackapi "github.com/slack-go/slack"
)

const (
	responseTypeEphemeral = "ephemeral"
	errorPrefix           = "エラー: "
)

// ephemeralResponse 仅投稿者可见的 slash command 响应
type ephemeralResponse struct {
	ResponseType string `json:"response_type"`
	Text         string `json:"text"`
}

// registerHandlers 注册路由
func (s *Server) registerHandlers(mux *http.ServeMux) {
	mux.HandleFunc(s.webhookPath, s.handleSubmission)
	mux.HandleFunc(config.HealthPath, s.handleHealth)
}

// handleSubmission 处理匿名投稿 webhook
// 转发失败也返回 200，错误放在响应体里
func (s *Server) handleSubmission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	ctx := r.Context()
	log := logger.FromContext(ctx)

	cmd, err := slackapi.SlashCommandParse(r)
	if err != nil {
		// ParseForm 出错时 PostForm 仍保留合法字段，坏字段按空串处理
		log.Warnf("Failed to parse submission form, continuing with well-formed fields: %v", err)
		cmd = commandFromForm(r.PostForm)
	}

	info := &service.SubmissionInfo{
		Text:        cmd.Text,
		ChannelID:   cmd.ChannelID,
		ChannelName: cmd.ChannelName,
		UserID:      cmd.UserID,
		UserName:    cmd.UserName,
	}

	result, err := s.service.Submit(ctx, info)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if result.RelayErr != nil {
		writeJSON(ctx, w, ephemeralResponse{
			ResponseType: responseTypeEphemeral,
			Text:         errorPrefix + result.RelayErr.Reason,
		})
		return
	}

	w.WriteHeader(http.StatusOK)
}

// commandFromForm 从已解析的表单取投稿所需字段
func commandFromForm(form url.Values) slackapi.SlashCommand {
	return slackapi.SlashCommand{
		Text:        form.Get("text"),
		ChannelID:   form.Get("channel_id"),
		ChannelName: form.Get("channel_name"),
		UserID:      form.Get("user_id"),
		UserName:    form.Get("user_name"),
	}
}

// handleHealth 检查存储连接
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			logger.FromContext(ctx).Warnf("Health check failed: %v", err)
			http.Error(w, "store unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(ctx context.Context, w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(ctx).Errorf("Failed to write response: %v", err)
	}
}
