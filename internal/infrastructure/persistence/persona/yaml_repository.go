package persona

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Nyukimin/supportdesk/internal/domain/persona"
	"github.com/Nyukimin/supportdesk/internal/domain/routing"
)

//go:embed defaults.yaml
var defaultPersonasYAML []byte

// YAMLRepository はYAMLファイルベースのPersona読み込み
// Personaの文言変更は再コンパイル不要（ファイル差し替えのみ）
// パス未指定の場合は組み込みのデフォルトPersonaを使用する
type YAMLRepository struct {
	path string
}

// NewYAMLRepository は新しいYAMLRepositoryを作成
func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{
		path: path,
	}
}

// personaFileDTO はYAMLファイルのルート構造
type personaFileDTO struct {
	Personas []personaDTO `yaml:"personas"`
}

// personaDTO はYAMLシリアライズ用のDTO
type personaDTO struct {
	Department         string `yaml:"department"`
	Name               string `yaml:"name"`
	InstructionProfile string `yaml:"instruction_profile"`
}

// Load はPersona一覧を読み込む
// 網羅性の検証は行わない（レジストリ構築時の責務）
func (r *YAMLRepository) Load() ([]persona.Persona, error) {
	data := defaultPersonasYAML

	if r.path != "" {
		fileData, err := os.ReadFile(r.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read persona file: %w", err)
		}
		data = fileData
	}

	var file personaFileDTO
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse persona YAML: %w", err)
	}

	personas := make([]persona.Persona, 0, len(file.Personas))
	for _, dto := range file.Personas {
		personas = append(personas, persona.Persona{
			Department:         routing.Department(dto.Department),
			Name:               dto.Name,
			InstructionProfile: dto.InstructionProfile,
		})
	}

	return personas, nil
}
