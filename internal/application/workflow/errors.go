package workflow

import "errors"

// ワークフローのエラー分類
// 最初に発生した失敗をそのまま表面化し、以降のステップは実行しない
var (
	// ErrEmptyQuery は空（または空白のみ）の問い合わせ
	// ポート呼び出し前に検出され、リトライ対象ではない
	ErrEmptyQuery = errors.New("query text is empty")

	// ErrClassification は分類ポートの失敗・タイムアウト・スキーマ外出力
	// 代替の分類結果を合成することはしない
	ErrClassification = errors.New("classification failed")

	// ErrResponse は応答ポートの失敗・タイムアウト
	// 計算済みの分類結果も破棄し、部分的な結果は返さない
	ErrResponse = errors.New("response generation failed")

	// ErrConfiguration は有効な部門に対するPersona欠落
	// 起動時の網羅性検証を通過していれば発生しない
	ErrConfiguration = errors.New("workflow configuration error")
)
