package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/uberfix/devtools/cmd/devtools/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newApp().Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

// newApp はコマンドツリーを組み立てる
// 引数なしで起動した場合は analyze と同じ処理を行う
func newApp() *cli.Command {
	return &cli.Command{
		Name:   "devtools",
		Usage:  "Webアプリケーションプロジェクト向けのアーキテクチャ解析・修復ツール",
		Flags:  analyzeFlags(),
		Action: commands.AnalyzeAction,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "ソースツリーを解析してアーキテクチャレポートを出力",
				Flags:  analyzeFlags(),
				Action: commands.AnalyzeAction,
			},
			{
				Name:  "repair",
				Usage: "any型やconsole.logなどのパターンを検出して修復",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "env",
						Usage: "環境変数ファイルパス",
						Value: ".env",
					},
					&cli.StringFlag{
						Name:  "root",
						Usage: "プロジェクトルート（未指定時は DEVTOOLS_PROJECT_ROOT）",
					},
					&cli.StringFlag{
						Name:  "out",
						Usage: "レポート出力先（未指定時は <root>/reports）",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "検出のみ行い、ファイルを変更しない",
					},
					&cli.BoolFlag{
						Name:  "skip-tests",
						Usage: "修復後のテスト実行を省略",
					},
				},
				Action: commands.RepairAction,
			},
		},
	}
}

// analyzeFlags は解析コマンドのフラグを返す
// フラグは解析結果を保持するため、コマンドごとに新しく作る
// ルートのフラグがサブコマンドに継承されないよう Local を指定する
func analyzeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "env",
			Usage: "環境変数ファイルパス",
			Value: ".env",
			Local: true,
		},
		&cli.StringFlag{
			Name:  "root",
			Usage: "プロジェクトルート（未指定時は DEVTOOLS_PROJECT_ROOT）",
			Local: true,
		},
		&cli.StringFlag{
			Name:  "out",
			Usage: "レポート出力先（未指定時は <root>/reports）",
			Local: true,
		},
		&cli.StringFlag{
			Name:  "descriptions",
			Usage: "ディレクトリ・ファイル説明を追加するYAMLファイル",
			Local: true,
		},
		&cli.BoolFlag{
			Name:  "gitignore",
			Usage: ".gitignore の除外ルールも適用",
			Local: true,
		},
		&cli.BoolFlag{
			Name:  "quiet",
			Usage: "レポートの概要を表示しない",
			Local: true,
		},
	}
}
