package routing

// Department は問い合わせの担当部門を表す型
type Department string

// 部門カテゴリの定数定義
const (
	DepartmentBilling     Department = "billing"      // 請求・支払い
	DepartmentTechSupport Department = "tech_support" // 技術サポート
	DepartmentSales       Department = "sales"        // 営業・販売
	DepartmentGeneral     Department = "general"      // 低確信度時の一次受付（明確化担当）
)

// ClassifiableDepartments は分類器が返しうる部門の閉集合
// DepartmentGeneral はルーティングポリシーのみが選択するため含まない
var ClassifiableDepartments = []Department{
	DepartmentBilling,
	DepartmentTechSupport,
	DepartmentSales,
}

// String はDepartmentの文字列表現を返す
func (d Department) String() string {
	return string(d)
}

// IsClassifiable は分類器の出力として有効な部門かを判定
func (d Department) IsClassifiable() bool {
	for _, dept := range ClassifiableDepartments {
		if d == dept {
			return true
		}
	}
	return false
}
