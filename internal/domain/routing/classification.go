package routing

// Classification は分類器による判定結果を表す値オブジェクト
// Confidence は名目上 0.0 - 1.0 の範囲だが、分類器側では保証されない
// （範囲外の値もそのまま保持し、境界での検証責務として文書化している）
type Classification struct {
	Department Department // 分類された部門
	Confidence float64    // 確信度（0.0 - 1.0）
	Reason     string     // 分類理由
}

// NewClassification は新しいClassificationを作成
func NewClassification(department Department, confidence float64, reason string) Classification {
	return Classification{
		Department: department,
		Confidence: confidence,
		Reason:     reason,
	}
}
