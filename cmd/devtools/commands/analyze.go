package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/uberfix/devtools/pkg/analyzer"
	"github.com/uberfix/devtools/pkg/report"
)

// 端末に表示するレポートの先頭行数
const summaryLines = 30

// AnalyzeAction はアーキテクチャ解析を実行するコマンドのアクション
// 引数なしで起動した場合もこのアクションが実行される
func AnalyzeAction(ctx context.Context, cmd *cli.Command) error {
	overrides := Overrides{
		Root:             cmd.String("root"),
		ReportsDir:       cmd.String("out"),
		DescriptionsFile: cmd.String("descriptions"),
	}
	if cmd.IsSet("gitignore") {
		v := cmd.Bool("gitignore")
		overrides.RespectGitignore = &v
	}
	quiet := cmd.Bool("quiet")

	appCtx, err := NewAppContext(cmd.String("env"), overrides, cmd.Root().Writer)
	if err != nil {
		return err
	}
	cfg := appCtx.Config
	console := appCtx.Console

	console.Heading("🚀 アーキテクチャ解析を開始します")
	appCtx.Logger.Info("アーキテクチャ解析を開始", "root", cfg.ProjectRoot)

	walker, err := appCtx.NewWalker()
	if err != nil {
		return err
	}

	descriptions, err := analyzer.LoadDescriptions(cfg.Scan.DescriptionsFile)
	if err != nil {
		return fmt.Errorf("説明ファイルの読み込みに失敗: %w", err)
	}

	a := analyzer.NewAnalyzer(walker, descriptions, nil, appCtx.Logger)
	result, err := a.Analyze(ctx, cfg.ProjectRoot)
	if err != nil {
		return fmt.Errorf("解析に失敗: %w", err)
	}

	out, err := report.WriteArchitecture(appCtx.NewReportWriter(), result)
	if err != nil {
		return fmt.Errorf("レポートの出力に失敗: %w", err)
	}

	console.Heading("📊 解析結果")
	console.Printf("📄 テキストレポート: %s", out.TextPath)
	console.Printf("📊 JSONデータ: %s", out.DataPath)
	if len(result.ArchitectureIssues) > 0 {
		console.Failure("⚠️  検出された問題: %d", len(result.ArchitectureIssues))
	} else {
		console.Success("✅ 検出された問題はありません")
	}

	if !quiet {
		console.Printf("")
		console.Printf("📋 レポートの概要:")
		console.Excerpt(out.Text, summaryLines)
	}

	return nil
}
