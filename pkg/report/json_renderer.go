package report

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/uberfix/devtools/pkg/models"
)

// RenderJSON は解析結果を2スペースインデントのJSONに変換します
// 非ASCII文字と <, >, & はエスケープしません
func RenderJSON(result *models.ArchitectureResult) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(result); err != nil {
		return nil, fmt.Errorf("failed to encode architecture data: %w", err)
	}
	return buf.Bytes(), nil
}
