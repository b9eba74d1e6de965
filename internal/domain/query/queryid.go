package query

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// QueryID は問い合わせの一意識別子を表す値オブジェクト
type QueryID struct {
	value string
}

// NewQueryID は新しいQueryIDを生成
func NewQueryID() QueryID {
	// フォーマット: YYYYMMDD-HHMMSS-{UUID先頭8文字}
	now := time.Now()
	datePrefix := now.Format("20060102-150405")
	uuidStr := uuid.New().String()[:8]

	return QueryID{
		value: fmt.Sprintf("%s-%s", datePrefix, uuidStr),
	}
}

// QueryIDFromString は文字列からQueryIDを復元
func QueryIDFromString(s string) QueryID {
	return QueryID{value: s}
}

// String はQueryIDの文字列表現を返す
func (q QueryID) String() string {
	return q.value
}

// Equals は2つのQueryIDが等しいかを判定
func (q QueryID) Equals(other QueryID) bool {
	return q.value == other.value
}

// IsZero はQueryIDがゼロ値かを判定
func (q QueryID) IsZero() bool {
	return q.value == ""
}
