package routing

import "testing"

func TestDepartment_IsClassifiable(t *testing.T) {
	tests := []struct {
		department Department
		want       bool
	}{
		{DepartmentBilling, true},
		{DepartmentTechSupport, true},
		{DepartmentSales, true},
		{DepartmentGeneral, false}, // フォールバックは分類器の出力としては無効
		{Department("marketing"), false},
		{Department(""), false},
		{Department("BILLING"), false}, // 大文字小文字は区別する
	}

	for _, tt := range tests {
		if got := tt.department.IsClassifiable(); got != tt.want {
			t.Errorf("IsClassifiable(%q) = %v, want %v", tt.department, got, tt.want)
		}
	}
}

func TestDepartment_String(t *testing.T) {
	if DepartmentTechSupport.String() != "tech_support" {
		t.Errorf("Expected 'tech_support', got '%s'", DepartmentTechSupport.String())
	}
}
