package repair

import (
	"fmt"
	"log/slog"
	"time"
)

// ActionLogTimeLayout は操作ログのタイムスタンプ形式です
const ActionLogTimeLayout = "2006-01-02 15:04:05"

// 操作ログで使うアクション名
const (
	ActionFixedAnyType      = "FIXED_ANY_TYPE"
	ActionRemovedConsoleLog = "REMOVED_CONSOLE_LOG"
	ActionAddedReactImport  = "ADDED_REACT_IMPORT"
	ActionJSONSkipped       = "JSON_SKIPPED"
	ActionJSONFixFailed     = "JSON_FIX_FAILED"
	ActionJSONFixed         = "JSON_FIXED"
	ActionBackupCreated     = "BACKUP_CREATED"
	ActionFixError          = "FIX_ERROR"
	ActionValidationStart   = "VALIDATION_START"
	ActionRunningTests      = "RUNNING_TESTS"
	ActionTestsSkipped      = "TESTS_SKIPPED"
	ActionTestsPassed       = "TESTS_PASSED"
	ActionTestsFailed       = "TESTS_FAILED"
	ActionTestsTimeout      = "TESTS_TIMEOUT"
	ActionTestsError        = "TESTS_ERROR"
)

// プロジェクト全体に対する操作の対象名
const projectActionTarget = "PROJECT"

// ActionLog は修復処理で行った操作を時系列で記録します
type ActionLog struct {
	entries []string
	now     func() time.Time
	logger  *slog.Logger
}

// NewActionLog は新しいActionLogを作成します
func NewActionLog(now func() time.Time, logger *slog.Logger) *ActionLog {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ActionLog{now: now, logger: logger}
}

// Record は「[時刻] ACTION: path | details」形式で1件記録します
// details が空の場合は「 | details」を省略します
func (l *ActionLog) Record(action, target, details string) {
	entry := fmt.Sprintf("[%s] %s: %s", l.now().Format(ActionLogTimeLayout), action, target)
	if details != "" {
		entry += " | " + details
	}
	l.entries = append(l.entries, entry)
	l.logger.Info(entry)
}

// Entries は記録済みのエントリを返します
func (l *ActionLog) Entries() []string {
	return append([]string(nil), l.entries...)
}

// Tail は最新の n 件を返します
func (l *ActionLog) Tail(n int) []string {
	if len(l.entries) <= n {
		return l.Entries()
	}
	return append([]string(nil), l.entries[len(l.entries)-n:]...)
}

// Len は記録件数を返します
func (l *ActionLog) Len() int {
	return len(l.entries)
}
