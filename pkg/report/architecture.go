package report

import (
	"fmt"

	"github.com/uberfix/devtools/pkg/models"
)

// アーキテクチャレポートのファイル名の接頭辞
const (
	TextReportPrefix = "architecture_report"
	DataReportPrefix = "architecture_data"
)

// ArchitectureOutput は書き出したアーキテクチャレポートです
type ArchitectureOutput struct {
	Text     string
	TextPath string
	DataPath string
}

// WriteArchitecture はテキストレポートとJSONデータを出力先に書き出します
// どちらかの生成や書き込みに失敗した場合はエラーを返します
func WriteArchitecture(w *Writer, result *models.ArchitectureResult) (*ArchitectureOutput, error) {
	text := RenderText(result)
	data, err := RenderJSON(result)
	if err != nil {
		return nil, err
	}

	textPath, err := w.Write(TextReportPrefix, ".txt", []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to write text report: %w", err)
	}
	dataPath, err := w.Write(DataReportPrefix, ".json", data)
	if err != nil {
		return nil, fmt.Errorf("failed to write architecture data: %w", err)
	}

	return &ArchitectureOutput{Text: text, TextPath: textPath, DataPath: dataPath}, nil
}
