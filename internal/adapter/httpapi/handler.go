package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Nyukimin/supportdesk/internal/application/workflow"
)

// Engine はワークフロー実行のインターフェース
type Engine interface {
	Run(ctx context.Context, text string) (workflow.Result, error)
}

// Handler は問い合わせAPIのHTTPハンドラー
type Handler struct {
	engine Engine
	logger *zap.Logger
}

// NewHandler は新しいHandlerを作成
func NewHandler(engine Engine, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		engine: engine,
		logger: logger,
	}
}

// ServeHTTP はHTTPリクエストを処理
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// ルーティング
	if r.URL.Path == "/health" && r.Method == http.MethodGet {
		h.handleHealth(w, r)
		return
	}

	if r.URL.Path == "/v1/queries" && r.Method == http.MethodPost {
		h.handleQuery(w, r)
		return
	}

	http.NotFound(w, r)
}

// handleHealth はヘルスチェック
func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// queryRequest は問い合わせリクエストボディ
type queryRequest struct {
	Text string `json:"text"`
}

// queryResponse は問い合わせレスポンスボディ
type queryResponse struct {
	QueryID    string  `json:"query_id"`
	Department string  `json:"department"`
	Confidence float64 `json:"confidence"`
	Reason     string  `json:"reason"`
	Handler    string  `json:"handler"`
	Response   string  `json:"response"`
}

// errorResponse はエラーレスポンスボディ
type errorResponse struct {
	Error string `json:"error"`
}

// handleQuery は問い合わせを処理
func (h *Handler) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	result, err := h.engine.Run(r.Context(), req.Text)
	if err != nil {
		h.logger.Warn("workflow run failed", zap.Error(err))
		h.writeError(w, statusForError(err), err.Error())
		return
	}

	h.logger.Info("query processed",
		zap.String("query_id", result.Query.ID().String()),
		zap.String("department", result.Classification.Department.String()),
		zap.Float64("confidence", result.Classification.Confidence),
		zap.String("handler", result.Decision.Handler.String()))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(queryResponse{
		QueryID:    result.Query.ID().String(),
		Department: result.Classification.Department.String(),
		Confidence: result.Classification.Confidence,
		Reason:     result.Classification.Reason,
		Handler:    result.Decision.Handler.String(),
		Response:   result.Response,
	})
}

// writeError はエラーレスポンスを書き込む
func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// statusForError はワークフローエラーをHTTPステータスに対応付ける
func statusForError(err error) int {
	switch {
	case errors.Is(err, workflow.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, workflow.ErrClassification), errors.Is(err, workflow.ErrResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
