package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/uberfix/devtools/internal/platform/config"
	"github.com/uberfix/devtools/internal/platform/logger"
	"github.com/uberfix/devtools/pkg/report"
	"github.com/uberfix/devtools/pkg/scanner"
	"github.com/uberfix/devtools/pkg/scanner/filter"
)

// Overrides はコマンドラインフラグで上書きする設定値です
// 空文字や nil の項目は環境変数（または.env）の値を使います
type Overrides struct {
	Root             string
	ReportsDir       string
	DescriptionsFile string
	RespectGitignore *bool
}

// AppContext はコマンド実行に必要な共通コンテキストを保持する
type AppContext struct {
	Config  *config.Config
	Logger  *slog.Logger
	Console *report.Console
}

// NewAppContext は設定を読み込み、フラグの値を反映して AppContext を作成する
func NewAppContext(envFile string, overrides Overrides, out io.Writer) (*AppContext, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return nil, fmt.Errorf("設定の読み込みに失敗: %w", err)
	}

	if overrides.Root != "" {
		cfg.ProjectRoot = overrides.Root
	}
	if err := cfg.SetProjectRoot(cfg.ProjectRoot); err != nil {
		return nil, err
	}
	if overrides.ReportsDir != "" {
		cfg.ReportsDir = overrides.ReportsDir
	}
	if overrides.DescriptionsFile != "" {
		cfg.Scan.DescriptionsFile = overrides.DescriptionsFile
	}
	if overrides.RespectGitignore != nil {
		cfg.Scan.RespectGitignore = *overrides.RespectGitignore
	}

	if out == nil {
		out = os.Stdout
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	return &AppContext{
		Config:  cfg,
		Logger:  appLogger,
		Console: report.NewConsole(out),
	}, nil
}

// NewWalker は設定に従ってプロジェクトツリーのウォーカーを作成する
// レポート出力先は走査対象から外す
func (ac *AppContext) NewWalker() (*scanner.Walker, error) {
	ignoreFilter, err := filter.NewIgnoreFilter(
		ac.Config.ProjectRoot,
		ac.Config.Scan.IgnoreDirs,
		ac.Config.Scan.RespectGitignore,
	)
	if err != nil {
		return nil, fmt.Errorf("除外ルールの読み込みに失敗: %w", err)
	}

	return scanner.NewWalker(ignoreFilter, []string{ac.Config.ResolvedReportsDir()}, ac.Logger), nil
}

// NewReportWriter はレポート出力用のWriterを作成する
func (ac *AppContext) NewReportWriter() *report.Writer {
	return report.NewWriter(ac.Config.ResolvedReportsDir(), nil)
}
