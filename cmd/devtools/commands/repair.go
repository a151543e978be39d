package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/uberfix/devtools/pkg/repair"
)

// RepairAction はリテラルパターンによる修復を実行するコマンドのアクション
func RepairAction(ctx context.Context, cmd *cli.Command) error {
	overrides := Overrides{
		Root:       cmd.String("root"),
		ReportsDir: cmd.String("out"),
	}
	dryRun := cmd.Bool("dry-run")
	skipTests := cmd.Bool("skip-tests")

	appCtx, err := NewAppContext(cmd.String("env"), overrides, cmd.Root().Writer)
	if err != nil {
		return err
	}
	cfg := appCtx.Config
	console := appCtx.Console

	console.Heading("🚀 修復処理を開始します")
	if dryRun {
		console.Printf("🔍 ドライラン: ファイルは変更しません")
	}

	walker, err := appCtx.NewWalker()
	if err != nil {
		return err
	}

	runner := repair.NewExecRunner(cfg.Repair.TestTimeout)
	repairer := repair.NewRepairer(walker, runner, appCtx.NewReportWriter(), nil, appCtx.Logger)

	result, err := repairer.Run(ctx, repair.Options{
		Root:      cfg.ProjectRoot,
		DryRun:    dryRun,
		SkipTests: skipTests,
	})
	if err != nil {
		return fmt.Errorf("修復処理に失敗: %w", err)
	}

	s := result.Summary
	console.Heading("📊 最終結果")
	console.Printf("📁 検査したファイル: %d", s.FilesScanned)
	console.Printf("⚠️  問題のあるファイル: %d", s.FilesWithIssues)
	console.Printf("🔧 検出した問題: %d", s.IssuesDetected)

	if dryRun {
		for _, a := range result.Analyses {
			for _, issue := range a.Issues {
				console.Printf("  - %s [%s] %s", issue.File, issue.Type, issue.Message)
			}
		}
		return nil
	}

	console.Printf("✅ 修復したファイル: %d", len(s.FixedFiles))
	console.Printf("📋 残っている問題: %d", s.Validation.RemainingIssues)
	switch {
	case !s.TestsRan:
		console.Printf("🧪 テスト: 未実行")
	case s.TestsPassed:
		console.Success("🧪 テスト: ✅ 成功")
	default:
		console.Failure("🧪 テスト: ❌ 失敗")
	}
	console.Printf("")
	console.Printf("📄 詳細レポート: %s", result.ReportPath)

	return nil
}
