package report

import (
	"fmt"
	"strings"

	"github.com/uberfix/devtools/pkg/models"
)

const (
	wideRule   = 80
	narrowRule = 40
)

var fileIcons = map[models.FileCategory]string{
	models.FileCategoryOther:     "📄",
	models.FileCategoryComponent: "⚛️",
}

var functionIcons = map[models.FunctionKind]string{
	models.FunctionKindPlain:     "🔧",
	models.FunctionKindComponent: "⚡",
}

func fileIcon(c models.FileCategory) string {
	if icon, ok := fileIcons[c]; ok {
		return icon
	}
	return "📜"
}

func functionIcon(k models.FunctionKind) string {
	if icon, ok := functionIcons[k]; ok {
		return icon
	}
	return "🎣"
}

// RenderText は解析結果を人が読むためのテキストレポートに変換します
// ディレクトリはパスの辞書順に並び、深さに応じてインデントされます
func RenderText(result *models.ArchitectureResult) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	info := result.ProjectInfo
	line("%s", strings.Repeat("=", wideRule))
	line("🏗️  アーキテクチャ解析レポート - %s", info.Name)
	line("%s", strings.Repeat("=", wideRule))
	line("生成日時: %s", info.GeneratedAt.Format("2006-01-02 15:04:05"))
	line("")

	line("📊 プロジェクト情報:")
	line("%s", strings.Repeat("-", narrowRule))
	line("📁 ファイル総数: %d", info.TotalFiles)
	line("🔧 関数総数: %d", info.TotalFunctions)
	line("📂 ディレクトリ総数: %d", info.TotalDirectories)
	line("")

	line("📁 プロジェクト構成:")
	line("%s", strings.Repeat("-", narrowRule))
	line("")

	for _, key := range result.SortedDirectoryPaths() {
		dir := result.FileStructure[key]
		depth := strings.Count(key, "/")
		indent := strings.Repeat("  ", depth+1)

		if key == models.RootDirectoryKey {
			line("📦 / (ルートディレクトリ)")
		} else {
			line("%s📁 %s", indent, key)
		}
		if dir.Description != "" {
			line("%s  📝 %s", indent, dir.Description)
		}

		fileIndent := strings.Repeat("  ", depth+2)
		funcIndent := strings.Repeat("  ", depth+3)
		for _, f := range dir.Files {
			line("%s%s %s", fileIndent, fileIcon(f.Type), f.Name)
			if f.Description != "" {
				line("%s  📝 %s", fileIndent, f.Description)
			}
			for _, fn := range f.Functions {
				line("%s%s %s - %s", funcIndent, functionIcon(fn.Type), fn.Name, fn.Description)
			}
		}
		line("")
	}

	line("💡 アーキテクチャ上の推奨事項:")
	line("%s", strings.Repeat("-", narrowRule))
	line("")
	for _, rec := range result.Recommendations {
		line("  %s", rec)
	}

	line("")
	line("%s", strings.Repeat("=", wideRule))
	line("🎯 アーキテクチャ解析が完了しました")
	b.WriteString(strings.Repeat("=", wideRule))

	return b.String()
}
