package analyzer

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var defaultFolderDescriptions = map[string]string{
	"src":              "ソースコードのメインディレクトリ",
	"src/components":   "再利用可能なReactコンポーネント",
	"src/pages":        "アプリケーションの主要ページ",
	"src/hooks":        "カスタムReact Hooks",
	"src/lib":          "ユーティリティと補助関数",
	"src/config":       "設定ファイル",
	"src/data":         "データファイルと定数",
	"src/routes":       "ルーティング設定",
	"src/integrations": "外部サービスとの連携",
	"public":           "公開用の静的ファイル",
	"public/icons":     "アプリケーションのアイコン",
	"public/img":       "画像とメディア",
	"public/logo":      "アプリケーションのロゴ",
	"scripts":          "実行・ビルド用スクリプト",
	"docs":             "ドキュメント",
	"e2e":              "End-to-Endテスト",
	"android":          "Androidアプリのコード",
	"supabase":         "Supabaseの設定とデータベース定義",
	".github":          "GitHub Actionsの設定",
}

var defaultFileDescriptions = map[string]string{
	"package.json":        "プロジェクトとパッケージの設定",
	"vite.config.ts":      "Vite開発環境の設定",
	"tsconfig.json":       "TypeScriptの設定",
	"tailwind.config.ts":  "Tailwind CSSの設定",
	"capacitor.config.ts": "モバイルアプリの設定",
	"src/main.tsx":        "アプリケーションのエントリポイント",
	"src/App.tsx":         "アプリケーションのルートコンポーネント",
	"src/App.css":         "ルートコンポーネントのスタイル",
	"index.html":          "メインのHTMLページ",
}

// パス部分一致の説明は順序付きで、最初に一致したものを採用します
var defaultPathDescriptions = []PathDescription{
	{Pattern: "src/components/auth", Description: "認証・登録のコンポーネント"},
	{Pattern: "src/components/dashboard", Description: "ダッシュボードのコンポーネント"},
	{Pattern: "src/components/maintenance", Description: "メンテナンス管理のコンポーネント"},
	{Pattern: "src/components/ui", Description: "基本UIコンポーネント"},
	{Pattern: "src/hooks", Description: "カスタムReact Hooks"},
	{Pattern: "src/pages/admin", Description: "システム管理ページ"},
	{Pattern: "src/pages/maintenance", Description: "メンテナンス依頼の管理ページ"},
	{Pattern: "src/lib", Description: "ユーティリティと補助関数"},
}

// PathDescription はパスの部分一致で適用される説明です
type PathDescription struct {
	Pattern     string `yaml:"pattern"`
	Description string `yaml:"description"`
}

// descriptionsFile は説明上書きファイルの構造です
type descriptionsFile struct {
	Folders map[string]string `yaml:"folders"`
	Files   map[string]string `yaml:"files"`
	Paths   []PathDescription `yaml:"paths"`
}

// Descriptions はディレクトリ・ファイルの静的な説明テーブルです
type Descriptions struct {
	folders map[string]string
	files   map[string]string
	paths   []PathDescription
}

// NewDescriptions は組み込みの説明テーブルを作成します
func NewDescriptions() *Descriptions {
	d := &Descriptions{
		folders: make(map[string]string, len(defaultFolderDescriptions)),
		files:   make(map[string]string, len(defaultFileDescriptions)),
		paths:   append([]PathDescription(nil), defaultPathDescriptions...),
	}
	for k, v := range defaultFolderDescriptions {
		d.folders[k] = v
	}
	for k, v := range defaultFileDescriptions {
		d.files[k] = v
	}
	return d
}

// LoadDescriptions は組み込みテーブルにYAMLファイルの内容を重ねて返します
// path が空の場合は組み込みテーブルのみを返します
func LoadDescriptions(path string) (*Descriptions, error) {
	d := NewDescriptions()
	if path == "" {
		return d, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptions file: %w", err)
	}

	var f descriptionsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse descriptions file %s: %w", path, err)
	}

	d.merge(f)
	return d, nil
}

func (d *Descriptions) merge(f descriptionsFile) {
	for k, v := range f.Folders {
		d.folders[k] = v
	}
	for k, v := range f.Files {
		d.files[k] = v
	}

	// ユーザー定義のパターンは組み込みより先に評価する
	paths := make([]PathDescription, 0, len(f.Paths)+len(d.paths))
	for _, p := range f.Paths {
		if p.Pattern == "" {
			continue
		}
		paths = append(paths, p)
	}
	d.paths = append(paths, d.paths...)
}

// Folder はディレクトリキー（ルート相対パス）の説明を返します
func (d *Descriptions) Folder(key string) string {
	return d.folders[key]
}

// File はファイルの説明を返します
// パスの部分一致を先に評価し、次に相対パス、最後にファイル名で引きます
func (d *Descriptions) File(relPath, name string) string {
	for _, p := range d.paths {
		if strings.Contains(relPath, p.Pattern) {
			return p.Description
		}
	}
	if desc, ok := d.files[relPath]; ok {
		return desc
	}
	return d.files[name]
}
