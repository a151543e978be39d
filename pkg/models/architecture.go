package models

import (
	"sort"
	"time"
)

// FileCategory はファイル名から判定される大まかな種別を表します
type FileCategory string

const (
	FileCategoryComponent  FileCategory = "react_component"
	FileCategoryTypeScript FileCategory = "typescript"
	FileCategoryJavaScript FileCategory = "javascript"
	FileCategoryStylesheet FileCategory = "stylesheet"
	FileCategoryConfig     FileCategory = "config"
	FileCategoryTest       FileCategory = "test"
	FileCategoryOther      FileCategory = "other"
)

// IsCode はソース抽出の対象となる種別かどうかを返します
func (c FileCategory) IsCode() bool {
	switch c {
	case FileCategoryComponent, FileCategoryTypeScript, FileCategoryJavaScript:
		return true
	}
	return false
}

// FunctionKind は関数宣言の形を表します
type FunctionKind string

const (
	FunctionKindPlain     FunctionKind = "function"
	FunctionKindArrow     FunctionKind = "arrow_function"
	FunctionKindComponent FunctionKind = "react_component"
	FunctionKindHook      FunctionKind = "custom_hook"
)

// ImportKind はインポート文の種類を表します
type ImportKind string

const (
	ImportKindNamed     ImportKind = "named_import"
	ImportKindNamespace ImportKind = "namespace_import"
	ImportKindDefault   ImportKind = "default_import"
)

// ExportKind はエクスポート文の種類を表します
type ExportKind string

const (
	ExportKindNamed    ExportKind = "named_export"
	ExportKindFunction ExportKind = "function_export"
	ExportKindDefault  ExportKind = "default_export"
	ExportKindMulti    ExportKind = "multi_export"
)

// RootDirectoryKey はルートディレクトリを表すキーです
const RootDirectoryKey = "ROOT"

// DirectoryRecord は1ディレクトリ分の構造情報を表します
// 生成後に変更されることはありません
type DirectoryRecord struct {
	Path        string       `json:"-"`
	Type        string       `json:"type"`
	Description string       `json:"description"`
	Files       []FileRecord `json:"files"`
	Subfolders  []string     `json:"subfolders"`
}

// FileRecord は1ファイル分の解析結果を表します
type FileRecord struct {
	Name         string           `json:"name"`
	Path         string           `json:"path"`
	Type         FileCategory     `json:"type"`
	Size         int64            `json:"size"`
	Functions    []FunctionRecord `json:"functions"`
	Imports      []ImportRecord   `json:"imports"`
	Exports      []ExportRecord   `json:"exports"`
	Description  string           `json:"description"`
	Dependencies []string         `json:"dependencies"`
	LinesOfCode  int              `json:"lines_of_code"`
	Language     string           `json:"language"`
	Error        string           `json:"error,omitempty"`
}

// FunctionRecord は正規表現で検出された関数らしき宣言を表します
// 名前の一意性は保証されません（同じ箇所が複数パターンにマッチすることがある）
type FunctionRecord struct {
	Name        string       `json:"name"`
	Type        FunctionKind `json:"type"`
	Parameters  string       `json:"parameters"`
	File        string       `json:"file"`
	Description string       `json:"description"`
}

// ImportRecord はインポート文のテキスト上の証拠です
type ImportRecord struct {
	Type     ImportKind `json:"type"`
	Source   string     `json:"source"`
	Elements string     `json:"elements"`
}

// ExportRecord はエクスポート文のテキスト上の証拠です
type ExportRecord struct {
	Type     ExportKind `json:"type"`
	Elements string     `json:"elements"`
}

// RepositoryInfo はGitリポジトリのメタデータです
type RepositoryInfo struct {
	Branch     string `json:"branch,omitempty"`
	Commit     string `json:"commit,omitempty"`
	RemoteHost string `json:"remote_host,omitempty"`
	RemotePath string `json:"remote_path,omitempty"`
}

// ProjectInfo はプロジェクト全体の概要です
type ProjectInfo struct {
	Name             string            `json:"name"`
	Version          string            `json:"version,omitempty"`
	Root             string            `json:"root"`
	PackageManager   string            `json:"package_manager"`
	GeneratedAt      time.Time         `json:"generated_at"`
	TotalDirectories int               `json:"total_directories"`
	TotalFiles       int               `json:"total_files"`
	TotalFunctions   int               `json:"total_functions"`
	Dependencies     map[string]string `json:"dependencies,omitempty"`
	DevDependencies  map[string]string `json:"dev_dependencies,omitempty"`
	Repository       *RepositoryInfo   `json:"repository,omitempty"`
}

// FunctionNode は functions_analysis の1エントリです
// calls / called_by / dependencies は現状常に空です
type FunctionNode struct {
	Function     FunctionRef `json:"function"`
	Calls        []string    `json:"calls"`
	CalledBy     []string    `json:"called_by"`
	Dependencies []string    `json:"dependencies"`
}

// FunctionRef はIDを付与した関数レコードです
type FunctionRef struct {
	ID string `json:"id"`
	FunctionRecord
}

// ArchitectureResult は1回の解析で得られる全データです
type ArchitectureResult struct {
	ProjectInfo             ProjectInfo                 `json:"project_info"`
	FileStructure           map[string]*DirectoryRecord `json:"file_structure"`
	FunctionsAnalysis       map[string]FunctionNode     `json:"functions_analysis"`
	DependenciesGraph       map[string][]string         `json:"dependencies_graph"`
	ComponentsRelationships map[string][]string         `json:"components_relationships"`
	ArchitectureIssues      []Issue                     `json:"architecture_issues"`
	Recommendations         []string                    `json:"recommendations"`
}

// SortedDirectoryPaths はディレクトリのパスを辞書順で返します
func (r *ArchitectureResult) SortedDirectoryPaths() []string {
	paths := make([]string, 0, len(r.FileStructure))
	for p := range r.FileStructure {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}
