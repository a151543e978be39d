package analyzer

import (
	"path"
	"sort"
	"strings"

	"github.com/uberfix/devtools/pkg/models"
)

// エイリアス @/ は src/ を指す（Viteの一般的な設定）
const aliasPrefix = "@/"
const aliasTarget = "src/"

// 拡張子なしのインポートを解決する際に試す候補（優先順）
var resolveSuffixes = []string{
	"", ".tsx", ".jsx", ".ts", ".js",
	"/index.tsx", "/index.jsx", "/index.ts", "/index.js",
}

// forEachFile はディレクトリのパス順、ファイル名順にファイルを訪問します
func forEachFile(structure map[string]*models.DirectoryRecord, fn func(f *models.FileRecord)) {
	keys := make([]string, 0, len(structure))
	for k := range structure {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		dir := structure[k]
		for i := range dir.Files {
			fn(&dir.Files[i])
		}
	}
}

// FunctionID は functions_analysis のキーを返します
func FunctionID(filePath, funcName string) string {
	return filePath + "::" + funcName
}

// BuildFunctionsAnalysis は関数ごとのエントリを作成します
// 同じキーが複数回現れた場合は後のエントリで上書きされます
func BuildFunctionsAnalysis(structure map[string]*models.DirectoryRecord) map[string]models.FunctionNode {
	graph := make(map[string]models.FunctionNode)
	forEachFile(structure, func(f *models.FileRecord) {
		for _, fn := range f.Functions {
			id := FunctionID(f.Path, fn.Name)
			graph[id] = models.FunctionNode{
				Function:     models.FunctionRef{ID: id, FunctionRecord: fn},
				Calls:        []string{},
				CalledBy:     []string{},
				Dependencies: []string{},
			}
		}
	})
	return graph
}

// BuildDependenciesGraph はファイルごとのインポート元一覧を作成します
// インポートが1つもないファイルは含まれません
func BuildDependenciesGraph(structure map[string]*models.DirectoryRecord) map[string][]string {
	graph := make(map[string][]string)
	forEachFile(structure, func(f *models.FileRecord) {
		if len(f.Imports) == 0 {
			return
		}
		sources := make([]string, 0, len(f.Imports))
		for _, imp := range f.Imports {
			sources = append(sources, imp.Source)
		}
		graph[f.Path] = sources
	})
	return graph
}

// BuildComponentsRelationships はコンポーネント間のインポート関係を作成します
// 相対パスと @/ エイリアスのみを解決し、解決先がコンポーネントの場合に限り記録します
func BuildComponentsRelationships(structure map[string]*models.DirectoryRecord) map[string][]string {
	components := make(map[string]bool)
	forEachFile(structure, func(f *models.FileRecord) {
		if f.Type == models.FileCategoryComponent {
			components[f.Path] = true
		}
	})

	relations := make(map[string][]string)
	forEachFile(structure, func(f *models.FileRecord) {
		if f.Type != models.FileCategoryComponent {
			return
		}

		seen := make(map[string]bool)
		var targets []string
		for _, imp := range f.Imports {
			target, ok := resolveImport(imp.Source, f.Path, components)
			if !ok || target == f.Path || seen[target] {
				continue
			}
			seen[target] = true
			targets = append(targets, target)
		}

		if len(targets) > 0 {
			relations[f.Path] = targets
		}
	})
	return relations
}

// resolveImport はインポート元をスキャン済みのファイルパスに解決します
func resolveImport(source, fromFile string, known map[string]bool) (string, bool) {
	var base string
	switch {
	case strings.HasPrefix(source, "./"), strings.HasPrefix(source, "../"):
		base = path.Join(path.Dir(fromFile), source)
	case strings.HasPrefix(source, aliasPrefix):
		base = aliasTarget + strings.TrimPrefix(source, aliasPrefix)
	default:
		return "", false
	}

	// ルートより上を指すインポートは解決しない
	if base == ".." || strings.HasPrefix(base, "../") {
		return "", false
	}

	for _, suffix := range resolveSuffixes {
		candidate := base + suffix
		if known[candidate] {
			return candidate, true
		}
	}
	return "", false
}
