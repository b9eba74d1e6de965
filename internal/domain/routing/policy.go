package routing

// ConfidenceThreshold はルーティング受理の下限値（この値以上で分類結果を採用）
const ConfidenceThreshold = 0.7

// Decision はルーティング決定の結果を表す
type Decision struct {
	Handler        Department     // 選択されたハンドラー部門
	Classification Classification // 決定の根拠となった分類結果
}

// Decide は分類結果からハンドラー部門を決定する純粋関数
// Confidence が閾値未満の場合は部門に関わらず DepartmentGeneral に振り分ける
// 閾値ちょうどの場合は分類された部門を採用する（閾値は受理側に含む）
// 範囲外のConfidenceもそのまま比較する（クランプしない）
func Decide(c Classification) Decision {
	if c.Confidence < ConfidenceThreshold {
		return Decision{Handler: DepartmentGeneral, Classification: c}
	}
	return Decision{Handler: c.Department, Classification: c}
}
