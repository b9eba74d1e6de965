package workflow

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Nyukimin/supportdesk/internal/domain/persona"
	"github.com/Nyukimin/supportdesk/internal/domain/query"
	"github.com/Nyukimin/supportdesk/internal/domain/routing"
)

// Classifier は問い合わせ分類ポートのインターフェース
type Classifier interface {
	Classify(ctx context.Context, q query.Query) (routing.Classification, error)
}

// Responder は応答生成ポートのインターフェース
type Responder interface {
	Respond(ctx context.Context, q query.Query, p persona.Persona) (string, error)
}

// Result はワークフロー実行の最終成果物
// 1回の実行につき1つ生成され、組み立て後は変更されない
type Result struct {
	Query          query.Query
	Classification routing.Classification
	Decision       routing.Decision
	Response       string
}

// Engine は分類→ルーティング→応答生成のワークフローを統括
// 実行ごとの状態を持たず、複数の同時実行は独立している
type Engine struct {
	classifier Classifier
	responder  Responder
	registry   *persona.Registry
	logger     *zap.Logger
}

// NewEngine は新しいEngineを作成
func NewEngine(classifier Classifier, responder Responder, registry *persona.Registry, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		classifier: classifier,
		responder:  responder,
		registry:   registry,
		logger:     logger,
	}
}

// Run は問い合わせテキストを処理してResultを返す
// 同一テキストの再実行でも分類・応答は毎回フルに実行する
// （曖昧な入力は呼び出しごとに異なる確信度を返しうるため、結果をキャッシュしない）
func (e *Engine) Run(ctx context.Context, text string) (Result, error) {
	// 1. 入力検証（ポート呼び出し前）
	if strings.TrimSpace(text) == "" {
		return Result{}, ErrEmptyQuery
	}

	q := query.NewQuery(query.NewQueryID(), text)

	// 2. 分類
	classification, err := e.classifier.Classify(ctx, q)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrClassification, err)
	}

	// 3. 閉集合メンバーシップ検証
	// リモート分類器は信頼できず、スキーマ外の部門を返しうる
	if !classification.Department.IsClassifiable() {
		return Result{}, fmt.Errorf("%w: unknown department %q", ErrClassification, classification.Department)
	}

	e.logger.Debug("query classified",
		zap.String("query_id", q.ID().String()),
		zap.String("department", classification.Department.String()),
		zap.Float64("confidence", classification.Confidence))

	// 4. ルーティング決定
	decision := routing.Decide(classification)

	e.logger.Debug("handler selected",
		zap.String("query_id", q.ID().String()),
		zap.String("handler", decision.Handler.String()))

	// 5. Persona取得と応答生成
	p, err := e.registry.Lookup(decision.Handler)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	response, err := e.responder.Respond(ctx, q, p)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrResponse, err)
	}

	// 6. 結果の組み立て
	return Result{
		Query:          q,
		Classification: classification,
		Decision:       decision,
		Response:       response,
	}, nil
}
