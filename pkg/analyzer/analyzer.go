package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/uberfix/devtools/pkg/models"
	"github.com/uberfix/devtools/pkg/project"
	"github.com/uberfix/devtools/pkg/repair"
	"github.com/uberfix/devtools/pkg/scanner"
	"github.com/uberfix/devtools/pkg/scanner/detector"
)

// DirectoryType は DirectoryRecord.Type の固定値です
const DirectoryType = "directory"

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// DefaultRecommendations はレポート末尾に載せる固定の推奨事項です
var DefaultRecommendations = []string{
	"✅ ビジネスロジックを表示コンポーネントから分離する",
	"✅ TypeScriptの型を厳密に使う",
	"✅ Hooksを専用のディレクトリにまとめる",
	"✅ ファイル名と関数名の命名規則を統一する",
	"✅ 複雑な関数にドキュメントを追加する",
	"✅ import/export の構成を整理する",
}

// Analyzer はプロジェクトツリーを走査してアーキテクチャ情報を組み立てます
type Analyzer struct {
	walker       *scanner.Walker
	languages    *detector.LanguageDetector
	descriptions *Descriptions
	now          func() time.Time
	logger       *slog.Logger
}

// NewAnalyzer は新しいAnalyzerを作成します
func NewAnalyzer(walker *scanner.Walker, descriptions *Descriptions, now func() time.Time, logger *slog.Logger) *Analyzer {
	if descriptions == nil {
		descriptions = NewDescriptions()
	}
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{
		walker:       walker,
		languages:    detector.NewLanguageDetector(),
		descriptions: descriptions,
		now:          now,
		logger:       logger,
	}
}

// Analyze は root 配下を解析して結果を返します
// 個々のファイルの読み込み失敗は FileRecord.Error に記録して処理を続けます
func (a *Analyzer) Analyze(ctx context.Context, root string) (*models.ArchitectureResult, error) {
	result := &models.ArchitectureResult{
		FileStructure:      make(map[string]*models.DirectoryRecord),
		ArchitectureIssues: []models.Issue{},
		Recommendations:    append([]string(nil), DefaultRecommendations...),
	}

	totalFiles, totalFunctions := 0, 0
	err := a.walker.Walk(root, func(dir scanner.Directory) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		record := &models.DirectoryRecord{
			Path:        dir.Key,
			Type:        DirectoryType,
			Description: a.descriptions.Folder(dir.Key),
			Files:       make([]models.FileRecord, 0, len(dir.Files)),
			Subfolders:  dir.Subfolders,
		}

		for _, f := range dir.Files {
			file, issues := a.analyzeFile(f)
			record.Files = append(record.Files, file)
			result.ArchitectureIssues = append(result.ArchitectureIssues, issues...)
			totalFunctions += len(file.Functions)
		}
		totalFiles += len(record.Files)

		result.FileStructure[dir.Key] = record
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk project tree: %w", err)
	}

	sort.SliceStable(result.ArchitectureIssues, func(i, j int) bool {
		return result.ArchitectureIssues[i].File < result.ArchitectureIssues[j].File
	})

	info := project.Inspect(root, a.logger)
	info.GeneratedAt = a.now()
	info.TotalDirectories = len(result.FileStructure)
	info.TotalFiles = totalFiles
	info.TotalFunctions = totalFunctions
	result.ProjectInfo = info

	result.FunctionsAnalysis = BuildFunctionsAnalysis(result.FileStructure)
	result.DependenciesGraph = BuildDependenciesGraph(result.FileStructure)
	result.ComponentsRelationships = BuildComponentsRelationships(result.FileStructure)

	a.logger.Info("プロジェクト構造の解析が完了しました",
		"directories", info.TotalDirectories,
		"files", totalFiles,
		"functions", totalFunctions,
		"issues", len(result.ArchitectureIssues),
	)

	return result, nil
}

// analyzeFile は1ファイルを解析します
// コードファイルのみ内容を読み込み、抽出とリテラルパターンの検査を行います
func (a *Analyzer) analyzeFile(f scanner.File) (models.FileRecord, []models.Issue) {
	rec := models.FileRecord{
		Name:         f.Name,
		Path:         f.RelPath,
		Type:         Classify(f.Name),
		Size:         f.Size,
		Functions:    []models.FunctionRecord{},
		Imports:      []models.ImportRecord{},
		Exports:      []models.ExportRecord{},
		Description:  a.descriptions.File(f.RelPath, f.Name),
		Dependencies: []string{},
	}
	if f.StatErr != nil {
		rec.Error = f.StatErr.Error()
	}

	if !rec.Type.IsCode() {
		rec.Language = a.languages.DetectLanguage(f.Name, nil)
		return rec, nil
	}

	content, err := readUTF8(f.AbsPath)
	if err != nil {
		a.logger.Warn("ファイルの読み込みに失敗しました", "path", f.RelPath, "error", err)
		rec.Error = err.Error()
		rec.Language = a.languages.DetectLanguage(f.Name, nil)
		return rec, []models.Issue{{
			File:    f.RelPath,
			Type:    models.IssueTypeReadError,
			Message: fmt.Sprintf("読み込みエラー: %v", err),
			Fixable: false,
		}}
	}

	ex := Extract(content, f.RelPath)
	rec.Functions = ex.Functions
	rec.Imports = ex.Imports
	rec.Exports = ex.Exports
	rec.Dependencies = ex.Dependencies
	rec.LinesOfCode = ex.LinesOfCode
	rec.Language = a.languages.DetectLanguage(f.Name, []byte(content))

	return rec, repair.Detect(f.RelPath, content)
}

func readUTF8(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errInvalidUTF8
	}
	return string(data), nil
}
