package repair

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/uberfix/devtools/pkg/models"
	"github.com/uberfix/devtools/pkg/project"
	"github.com/uberfix/devtools/pkg/report"
	"github.com/uberfix/devtools/pkg/scanner"
)

// ReportPrefix は修復レポートのファイル名の接頭辞です
const ReportPrefix = "repair_report"

// Options は1回の修復処理の設定です
type Options struct {
	// Root は対象プロジェクトのルート
	Root string
	// DryRun の場合は検出のみ行い、ファイルを一切書き込みません
	DryRun bool
	// SkipTests の場合はプロジェクトのテストを実行しません
	SkipTests bool
}

// Result は修復処理の結果です
type Result struct {
	Summary    models.RepairSummary
	Analyses   []models.FileAnalysis
	Actions    []string
	ReportPath string
}

// Repairer はソースの収集から修正、検証、テスト実行、レポート出力までを行います
type Repairer struct {
	walker *scanner.Walker
	runner TestRunner
	writer *report.Writer
	now    func() time.Time
	logger *slog.Logger
}

// NewRepairer は新しいRepairerを作成します
func NewRepairer(walker *scanner.Walker, runner TestRunner, writer *report.Writer, now func() time.Time, logger *slog.Logger) *Repairer {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Repairer{
		walker: walker,
		runner: runner,
		writer: writer,
		now:    now,
		logger: logger,
	}
}

// Run は修復処理を実行します
// ファイル単位の失敗は操作ログに記録して処理を続けます
func (r *Repairer) Run(ctx context.Context, opts Options) (*Result, error) {
	sources, err := CollectSources(r.walker, opts.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to collect source files: %w", err)
	}
	r.logger.Info("ソースファイルを収集しました", "count", len(sources))

	log := NewActionLog(r.now, r.logger)
	fixer := NewFixer(log)
	pm := project.DetectPackageManager(opts.Root)

	result := &Result{
		Analyses: make([]models.FileAnalysis, 0, len(sources)),
		Summary: models.RepairSummary{
			FilesScanned:   len(sources),
			FixedFiles:     []string{},
			DryRun:         opts.DryRun,
			PackageManager: string(pm),
		},
	}

	fixedSources := []Source{}
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		analysis := DetectFile(src)
		result.Analyses = append(result.Analyses, analysis)
		if analysis.IssuesCount() == 0 {
			continue
		}

		result.Summary.FilesWithIssues++
		result.Summary.IssuesDetected += analysis.IssuesCount()
		r.logger.Debug("問題を検出しました", "file", src.RelPath, "issues", analysis.IssuesCount())

		if opts.DryRun {
			continue
		}
		if r.applyFixes(src, analysis, fixer, log) {
			fixedSources = append(fixedSources, src)
			result.Summary.FixedFiles = append(result.Summary.FixedFiles, src.RelPath)
		}
	}
	sort.Strings(result.Summary.FixedFiles)

	if opts.DryRun {
		result.Actions = log.Entries()
		return result, nil
	}

	result.Summary.Validation = r.validate(fixedSources, log)

	if !opts.SkipTests {
		result.Summary.TestsRan, result.Summary.TestsPassed = r.runTests(ctx, opts.Root, pm, log)
	}

	text := RenderReport(result.Summary, log, r.now())
	reportPath, err := r.writer.Write(ReportPrefix, ".txt", []byte(text))
	if err != nil {
		return nil, fmt.Errorf("failed to write repair report: %w", err)
	}

	result.ReportPath = reportPath
	result.Actions = log.Entries()
	return result, nil
}

// applyFixes は修正を適用し、ファイルを書き換えた場合に true を返します
// 書き換えの前に必ずバックアップを作成し、作成に失敗した場合は書き換えません
func (r *Repairer) applyFixes(src Source, analysis models.FileAnalysis, fixer *Fixer, log *ActionLog) bool {
	fixable := analysis.FixableIssues()
	if len(fixable) == 0 {
		return false
	}

	info, err := os.Stat(src.AbsPath)
	if err != nil {
		log.Record(ActionFixError, src.RelPath, fmt.Sprintf("修正中のエラー: %v", err))
		return false
	}
	original, err := os.ReadFile(src.AbsPath)
	if err != nil {
		log.Record(ActionFixError, src.RelPath, fmt.Sprintf("修正中のエラー: %v", err))
		return false
	}

	fixed := fixer.Apply(src.RelPath, string(original), fixable)
	if fixed == string(original) {
		return false
	}

	perm := info.Mode().Perm()
	backupPath, err := WriteBackup(src.AbsPath, original, perm, r.now())
	if err != nil {
		log.Record(ActionFixError, src.RelPath, fmt.Sprintf("修正中のエラー: %v", err))
		return false
	}
	log.Record(ActionBackupCreated, src.RelPath, filepath.Base(backupPath))

	if err := os.WriteFile(src.AbsPath, []byte(fixed), perm); err != nil {
		log.Record(ActionFixError, src.RelPath, fmt.Sprintf("修正中のエラー: %v", err))
		return false
	}

	return true
}

// validate は修正したファイルを再検査します
func (r *Repairer) validate(fixed []Source, log *ActionLog) models.ValidationResult {
	log.Record(ActionValidationStart, projectActionTarget, "修正結果の検証を開始します")

	validation := models.ValidationResult{
		ValidatedFiles: []models.FileAnalysis{},
		TotalFixed:     len(fixed),
	}
	for _, src := range fixed {
		analysis := DetectFile(src)
		validation.ValidatedFiles = append(validation.ValidatedFiles, analysis)
		validation.RemainingIssues += analysis.IssuesCount()
	}
	return validation
}

// runTests は test スクリプトがある場合にのみプロジェクトのテストを実行します
// 戻り値は（実行したか、成功したか）です
func (r *Repairer) runTests(ctx context.Context, root string, pm project.PackageManager, log *ActionLog) (bool, bool) {
	log.Record(ActionRunningTests, projectActionTarget, "テストを開始します")

	manifest, err := project.LoadManifest(root)
	if err != nil && !errors.Is(err, project.ErrManifestNotFound) {
		log.Record(ActionTestsSkipped, projectActionTarget, fmt.Sprintf("package.json を読み込めません: %v", err))
		return false, false
	}
	if !manifest.HasScript("test") {
		log.Record(ActionTestsSkipped, projectActionTarget, "package.json に test スクリプトが無いためスキップしました")
		return false, false
	}

	res := r.runner.Run(ctx, root, pm.TestCommand())
	switch res.Outcome {
	case TestOutcomePassed:
		log.Record(ActionTestsPassed, projectActionTarget, "すべてのテストが成功しました")
	case TestOutcomeFailed:
		log.Record(ActionTestsFailed, projectActionTarget, fmt.Sprintf("テストが失敗しました: %s", res.Stderr))
	case TestOutcomeTimeout:
		log.Record(ActionTestsTimeout, projectActionTarget, "テストがタイムアウトしました")
	default:
		log.Record(ActionTestsError, projectActionTarget, fmt.Sprintf("テストを実行できませんでした: %v", res.Err))
	}

	return true, res.Passed()
}
