package persona

import (
	"errors"
	"fmt"

	"github.com/Nyukimin/supportdesk/internal/domain/routing"
)

// レジストリ関連のセンチネルエラー
var (
	ErrPersonaNotFound = errors.New("persona not found")
	ErrIncomplete      = errors.New("persona registry is incomplete")
)

// Registry は部門ごとのPersonaを保持する不変のレジストリ
// 構築後は変更されないため、同期なしで並行読み取りできる
type Registry struct {
	personas map[routing.Department]Persona
}

// requiredDepartments はレジストリが網羅すべき部門（閉集合＋フォールバック）
var requiredDepartments = []routing.Department{
	routing.DepartmentBilling,
	routing.DepartmentTechSupport,
	routing.DepartmentSales,
	routing.DepartmentGeneral,
}

// NewRegistry は新しいRegistryを構築する
// 全部門（フォールバック含む）のPersonaが揃っていない場合はエラーを返す
// この網羅性検証は起動時の不変条件であり、リクエスト処理時には再検証しない
func NewRegistry(personas []Persona) (*Registry, error) {
	byDept := make(map[routing.Department]Persona, len(personas))
	for _, p := range personas {
		if p.InstructionProfile == "" {
			return nil, fmt.Errorf("%w: empty instruction profile for department %s", ErrIncomplete, p.Department)
		}
		if _, dup := byDept[p.Department]; dup {
			return nil, fmt.Errorf("%w: duplicate persona for department %s", ErrIncomplete, p.Department)
		}
		byDept[p.Department] = p
	}

	for _, dept := range requiredDepartments {
		if _, ok := byDept[dept]; !ok {
			return nil, fmt.Errorf("%w: missing persona for department %s", ErrIncomplete, dept)
		}
	}

	return &Registry{personas: byDept}, nil
}

// Lookup は部門に対応するPersonaを返す
// 構築時に網羅性を検証済みのため、有効な部門で失敗するのは設定異常のみ
func (r *Registry) Lookup(dept routing.Department) (Persona, error) {
	p, ok := r.personas[dept]
	if !ok {
		return Persona{}, fmt.Errorf("%w: %s", ErrPersonaNotFound, dept)
	}
	return p, nil
}
