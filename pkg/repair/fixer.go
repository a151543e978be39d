package repair

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/uberfix/devtools/pkg/models"
)

// ReactImportLine は不足しているReactのimportとして挿入する行です
const ReactImportLine = "import React from 'react'"

type replacement struct {
	old string
	new string
}

// 順番に適用する。": any" が先に置換されるため ": any[]" は通常そのまま残らない
var anyReplacements = []replacement{
	{": any", ": unknown"},
	{": any[]", ": unknown[]"},
	{"Promise<any>", "Promise<unknown>"},
	{"Array<any>", "Array<unknown>"},
	{"Record<string, any>", "Record<string, unknown>"},
}

// Fixer は検出された問題に対してテキスト置換による修正を行います
type Fixer struct {
	log *ActionLog
}

// NewFixer は新しいFixerを作成します
func NewFixer(log *ActionLog) *Fixer {
	return &Fixer{log: log}
}

// Apply は修正可能な問題を検出順に適用し、修正後の内容を返します
// 内容が変わらなかった場合は入力をそのまま返します
func (f *Fixer) Apply(relPath, content string, issues []models.Issue) string {
	for _, issue := range issues {
		if !issue.Fixable {
			continue
		}
		switch issue.Type {
		case models.IssueTypeAnyType:
			content = f.FixAnyTypes(relPath, content)
		case models.IssueTypeConsoleLog:
			content = f.FixConsoleLogs(relPath, content)
		case models.IssueTypeMissingReactImport:
			content = f.FixReactImport(relPath, content)
		case models.IssueTypeInvalidJSON:
			content = f.FixJSON(relPath, content)
		}
	}
	return content
}

// FixAnyTypes は any を unknown に置き換えます
func (f *Fixer) FixAnyTypes(relPath, content string) string {
	for _, r := range anyReplacements {
		if strings.Contains(content, r.old) {
			content = strings.ReplaceAll(content, r.old, r.new)
			f.log.Record(ActionFixedAnyType, relPath, fmt.Sprintf("%s -> %s", r.old, r.new))
		}
	}
	return content
}

// FixConsoleLogs は console.log を含む行を削除します
// 行頭（空白を除く）が // のコメント行は残します
func (f *Fixer) FixConsoleLogs(relPath, content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	removed := 0

	for _, line := range lines {
		if strings.Contains(line, consoleLogMarker) && !strings.HasPrefix(strings.TrimSpace(line), "//") {
			removed++
			continue
		}
		kept = append(kept, line)
	}

	if removed > 0 {
		f.log.Record(ActionRemovedConsoleLog, relPath, fmt.Sprintf("console.log を %d 行削除しました", removed))
	}
	return strings.Join(kept, "\n")
}

// FixReactImport は最初のimport行の直前（無ければ先頭）にReactのimportを挿入します
func (f *Fixer) FixReactImport(relPath, content string) string {
	if !needsReactImport(content) {
		return content
	}

	lines := strings.Split(content, "\n")
	at := 0
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "import") {
			at = i
			break
		}
	}

	lines = slices.Insert(lines, at, ReactImportLine)
	f.log.Record(ActionAddedReactImport, relPath, "")
	return strings.Join(lines, "\n")
}

// FixJSON は不正なJSONを慎重に修正します
// 波括弧の数が合わない場合は手を付けず、前後の空白を除いても不正な場合も元のまま返します
func (f *Fixer) FixJSON(relPath, content string) string {
	cleaned := strings.TrimSpace(content)

	if strings.Count(cleaned, "{") != strings.Count(cleaned, "}") {
		f.log.Record(ActionJSONSkipped, relPath, "波括弧の対応が取れていないため手動での修正が必要です")
		return content
	}

	var v any
	if err := json.Unmarshal([]byte(cleaned), &v); err != nil {
		f.log.Record(ActionJSONFixFailed, relPath, fmt.Sprintf("修正できませんでした: %v", err))
		return content
	}

	if cleaned != content {
		f.log.Record(ActionJSONFixed, relPath, "前後の空白を除去しました")
	}
	return cleaned
}
