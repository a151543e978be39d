package repair

import (
	"fmt"
	"strings"
	"time"

	"github.com/uberfix/devtools/pkg/models"
)

// レポートに載せる操作ログの件数
const reportTailSize = 20

// RenderReport は修復結果のテキストレポートを作成します
func RenderReport(summary models.RepairSummary, log *ActionLog, now time.Time) string {
	rule := strings.Repeat("=", 60)
	lines := []string{
		rule,
		"📊 修復レポート",
		rule,
		fmt.Sprintf("日時: %s", now.Format(ActionLogTimeLayout)),
		fmt.Sprintf("パッケージマネージャー: %s", summary.PackageManager),
		fmt.Sprintf("検査したファイル: %d", summary.FilesScanned),
		fmt.Sprintf("問題のあるファイル: %d", summary.FilesWithIssues),
		fmt.Sprintf("検出した問題: %d", summary.IssuesDetected),
		fmt.Sprintf("修復したファイル: %d", len(summary.FixedFiles)),
		fmt.Sprintf("残っている問題: %d", summary.Validation.RemainingIssues),
		fmt.Sprintf("テスト: %s", testsLabel(summary)),
		fmt.Sprintf("記録した操作: %d", log.Len()),
		"",
		"📁 修復したファイル:",
	}

	for _, f := range summary.FixedFiles {
		lines = append(lines, "  ✅ "+f)
	}

	lines = append(lines, "", fmt.Sprintf("📝 操作ログ（最新%d件）:", reportTailSize))
	for _, entry := range log.Tail(reportTailSize) {
		lines = append(lines, "  "+entry)
	}
	lines = append(lines, rule)

	return strings.Join(lines, "\n")
}

func testsLabel(summary models.RepairSummary) string {
	switch {
	case !summary.TestsRan:
		return "未実行"
	case summary.TestsPassed:
		return "✅ 成功"
	default:
		return "❌ 失敗"
	}
}
