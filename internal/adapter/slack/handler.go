package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"go.uber.org/zap"

	"github.com/Nyukimin/supportdesk/internal/application/workflow"
)

// Engine はワークフロー実行のインターフェース
type Engine interface {
	Run(ctx context.Context, text string) (workflow.Result, error)
}

// Poster はSlackへの投稿インターフェース（テスト用に抽象化）
type Poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Handler はSlack Events APIの受付ハンドラー
// 顧客メッセージをワークフローへ渡し、担当部門の応答をスレッドに返信する
type Handler struct {
	engine        Engine
	poster        Poster
	signingSecret string
	logger        *zap.Logger
}

// NewHandler は新しいHandlerを作成
func NewHandler(engine Engine, poster Poster, signingSecret string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine:        engine,
		poster:        poster,
		signingSecret: signingSecret,
		logger:        logger,
	}
}

// ServeHTTP はSlackからのイベントを処理
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	// 署名検証
	if err := h.verifySignature(r.Header, body); err != nil {
		h.logger.Warn("slack signature verification failed", zap.Error(err))
		http.Error(w, "invalid signature", http.StatusUnauthorized)
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		http.Error(w, "failed to parse event", http.StatusBadRequest)
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		h.handleURLVerification(w, body)

	case slackevents.CallbackEvent:
		h.handleCallbackEvent(r.Context(), event)
		w.WriteHeader(http.StatusOK)

	default:
		w.WriteHeader(http.StatusOK)
	}
}

// verifySignature はSlackの署名シークレットでリクエストを検証
func (h *Handler) verifySignature(header http.Header, body []byte) error {
	verifier, err := slack.NewSecretsVerifier(header, h.signingSecret)
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}

	if _, err := verifier.Write(body); err != nil {
		return fmt.Errorf("failed to write body to verifier: %w", err)
	}

	return verifier.Ensure()
}

// handleURLVerification はエンドポイント検証チャレンジに応答
func (h *Handler) handleURLVerification(w http.ResponseWriter, body []byte) {
	var challenge slackevents.ChallengeResponse
	if err := json.Unmarshal(body, &challenge); err != nil {
		http.Error(w, "failed to parse challenge", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(challenge.Challenge))
}

// handleCallbackEvent はメッセージイベントを処理
func (h *Handler) handleCallbackEvent(ctx context.Context, event slackevents.EventsAPIEvent) {
	ev, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		return
	}

	// ボット自身の投稿やメッセージ編集等は無視
	if ev.BotID != "" || ev.SubType != "" {
		return
	}

	result, err := h.engine.Run(ctx, ev.Text)
	if err != nil {
		h.logger.Warn("workflow run failed for slack message",
			zap.String("channel", ev.Channel),
			zap.Error(err))
		return
	}

	h.logger.Info("slack query processed",
		zap.String("query_id", result.Query.ID().String()),
		zap.String("handler", result.Decision.Handler.String()),
		zap.String("channel", ev.Channel))

	// 担当部門の応答をスレッドに返信
	_, _, err = h.poster.PostMessageContext(ctx, ev.Channel,
		slack.MsgOptionText(result.Response, false),
		slack.MsgOptionTS(ev.TimeStamp),
	)
	if err != nil {
		h.logger.Error("failed to post slack reply",
			zap.String("channel", ev.Channel),
			zap.Error(err))
	}
}
