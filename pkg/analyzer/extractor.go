package analyzer

import (
	"regexp"
	"sort"
	"strings"

	"github.com/uberfix/devtools/pkg/models"
)

// 抽出は正規表現によるヒューリスティックであり、構文解析は行いません。
// 入れ子の宣言や文字列内の類似表現、複数行にまたがるシグネチャでは
// 誤検出・検出漏れ・重複が起こり得ます。

type functionPattern struct {
	kind    models.FunctionKind
	pattern *regexp.Regexp
}

type importPattern struct {
	kind    models.ImportKind
	pattern *regexp.Regexp
}

type exportPattern struct {
	kind    models.ExportKind
	pattern *regexp.Regexp
}

var functionPatterns = []functionPattern{
	// 戻り値型付きのReactコンポーネント
	{models.FunctionKindComponent, regexp.MustCompile(`const\s+([\p{L}\p{N}_]+)\s*=\s*\(\s*(.*?)\s*\)\s*:\s*([\p{L}\p{N}_]+)\s*=>\s*\{`)},
	{models.FunctionKindPlain, regexp.MustCompile(`function\s+([\p{L}\p{N}_]+)\s*\(\s*(.*?)\s*\)\s*\{`)},
	{models.FunctionKindComponent, regexp.MustCompile(`export\s+const\s+([\p{L}\p{N}_]+)\s*=\s*\(\s*(.*?)\s*\)\s*=>\s*\{`)},
	{models.FunctionKindArrow, regexp.MustCompile(`const\s+([\p{L}\p{N}_]+)\s*=\s*\(\s*(.*?)\s*\)\s*=>\s*\{`)},
	{models.FunctionKindHook, regexp.MustCompile(`const\s+use([\p{L}\p{N}_]+)\s*=\s*\(\s*(.*?)\s*\)\s*=>\s*\{`)},
}

var importPatterns = []importPattern{
	{models.ImportKindNamed, regexp.MustCompile(`import\s+(.*?)\s+from\s+['"](.*?)['"]`)},
	{models.ImportKindNamespace, regexp.MustCompile(`import\s+\*\s+as\s+([\p{L}\p{N}_]+)\s+from\s+['"](.*?)['"]`)},
	{models.ImportKindDefault, regexp.MustCompile(`import\s+['"](.*?)['"]`)},
}

var exportPatterns = []exportPattern{
	{models.ExportKindNamed, regexp.MustCompile(`export\s+const\s+([\p{L}\p{N}_]+)`)},
	{models.ExportKindFunction, regexp.MustCompile(`export\s+function\s+([\p{L}\p{N}_]+)`)},
	{models.ExportKindDefault, regexp.MustCompile(`export\s+default\s+([\p{L}\p{N}_]+)`)},
	{models.ExportKindMulti, regexp.MustCompile(`export\s+\{\s*(.*?)\s*\}`)},
}

// ライブラリ利用の痕跡
var libraryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`supabase\.([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`useState|useEffect|useContext`),
	regexp.MustCompile(`axios\.([\p{L}\p{N}_]+)`),
	regexp.MustCompile(`fetch\(|\.fetch\(`),
	regexp.MustCompile(`localStorage\.`),
	regexp.MustCompile(`sessionStorage\.`),
}

// Extraction は1ファイル分の抽出結果です
type Extraction struct {
	Functions    []models.FunctionRecord
	Imports      []models.ImportRecord
	Exports      []models.ExportRecord
	Dependencies []string
	LinesOfCode  int
}

// Extract はソースコードから関数・インポート・エクスポート・ライブラリ利用を抽出します
// パターンごとに重ならないマッチをすべて返し、パターン間の重複は除去しません
func Extract(content, relPath string) Extraction {
	return Extraction{
		Functions:    ExtractFunctions(content, relPath),
		Imports:      ExtractImports(content),
		Exports:      ExtractExports(content),
		Dependencies: ExtractDependencies(content),
		LinesOfCode:  CountLines(content),
	}
}

// ExtractFunctions は関数らしき宣言を抽出します
func ExtractFunctions(content, relPath string) []models.FunctionRecord {
	functions := []models.FunctionRecord{}
	for _, fp := range functionPatterns {
		for _, m := range fp.pattern.FindAllStringSubmatch(content, -1) {
			name := m[1]
			functions = append(functions, models.FunctionRecord{
				Name:        name,
				Type:        fp.kind,
				Parameters:  m[2],
				File:        relPath,
				Description: FunctionDescription(name, fp.kind),
			})
		}
	}
	return functions
}

// ExtractImports はインポート文を抽出します
func ExtractImports(content string) []models.ImportRecord {
	imports := []models.ImportRecord{}
	for _, ip := range importPatterns {
		for _, m := range ip.pattern.FindAllStringSubmatch(content, -1) {
			rec := models.ImportRecord{Type: ip.kind}
			if len(m) > 2 {
				rec.Source = m[2]
			} else {
				rec.Source = m[1]
			}
			if ip.kind == models.ImportKindNamed {
				rec.Elements = m[1]
			}
			imports = append(imports, rec)
		}
	}
	return imports
}

// ExtractExports はエクスポート文を抽出します
func ExtractExports(content string) []models.ExportRecord {
	exports := []models.ExportRecord{}
	for _, ep := range exportPatterns {
		for _, m := range ep.pattern.FindAllStringSubmatch(content, -1) {
			exports = append(exports, models.ExportRecord{
				Type:     ep.kind,
				Elements: m[1],
			})
		}
	}
	return exports
}

// ExtractDependencies はライブラリ利用の痕跡を重複なし・辞書順で返します
func ExtractDependencies(content string) []string {
	seen := make(map[string]bool)
	for _, p := range libraryPatterns {
		for _, m := range p.FindAllString(content, -1) {
			seen[m] = true
		}
	}

	deps := make([]string, 0, len(seen))
	for d := range seen {
		deps = append(deps, d)
	}
	sort.Strings(deps)
	return deps
}

// CountLines は行数を数えます（末尾の改行は新しい行として数えない）
// \r\n は1つの改行として扱い、\f や \u2028 などの行区切り文字も改行とみなします
func CountLines(content string) int {
	n := 0
	prevCR := false
	endsWithBreak := true
	for _, r := range content {
		switch {
		case r == '\n' && prevCR:
			// \r\n の \n は直前の \r で数え済み
		case isLineBreak(r):
			n++
		}
		prevCR = r == '\r'
		endsWithBreak = isLineBreak(r)
	}
	if !endsWithBreak {
		n++
	}
	return n
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// FunctionDescription は関数の種類と名前から説明文を返します
func FunctionDescription(name string, kind models.FunctionKind) string {
	lower := strings.ToLower(name)

	switch {
	case kind == models.FunctionKindComponent:
		return "UIを描画するReactコンポーネント"
	case kind == models.FunctionKindHook && strings.HasPrefix(name, "use"):
		return name[3:] + " の状態を管理するカスタムHook"
	case strings.Contains(lower, "handler"):
		return "イベント・操作のハンドラ"
	case strings.Contains(lower, "get"):
		return "データ取得関数"
	case strings.Contains(lower, "set"):
		return "データ設定関数"
	case strings.Contains(lower, "update"):
		return "データ更新関数"
	case strings.Contains(lower, "delete"):
		return "データ削除関数"
	}

	return "処理関数"
}
