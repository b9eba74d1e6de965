package persona

import "github.com/Nyukimin/supportdesk/internal/domain/routing"

// Persona は応答生成に与える担当者プロファイルを表す
// 実行時には読み取り専用のデータであり、起動時に一度だけ構築される
type Persona struct {
	Department         routing.Department // 担当部門
	Name               string             // 担当者名（例: "Sarah"）
	InstructionProfile string             // 応答生成用の指示文（口調・必須ポイント・制約）
}
