package query

// Query は顧客からの問い合わせを表す値オブジェクト
// テキストの非空検証はワークフロー側の責務（空文字はワークフローが拒否する）
type Query struct {
	id   QueryID
	text string
}

// NewQuery は新しいQueryを作成
func NewQuery(id QueryID, text string) Query {
	return Query{
		id:   id,
		text: text,
	}
}

// ID は問い合わせIDを返す
func (q Query) ID() QueryID {
	return q.id
}

// Text は問い合わせテキストを返す
func (q Query) Text() string {
	return q.text
}
