package models

// IssueType は修復ツールが検出する問題の種類を表します
type IssueType string

const (
	IssueTypeAnyType            IssueType = "ANY_TYPE"
	IssueTypeConsoleLog         IssueType = "CONSOLE_LOG"
	IssueTypeMissingReactImport IssueType = "MISSING_REACT_IMPORT"
	IssueTypeInvalidJSON        IssueType = "INVALID_JSON"
	IssueTypeReadError          IssueType = "READ_ERROR"
)

// Issue はファイル単位で検出された問題です
type Issue struct {
	File    string    `json:"file"`
	Type    IssueType `json:"type"`
	Message string    `json:"message"`
	Fixable bool      `json:"fixable"`
}

// FileAnalysis は1ファイルの検出結果です
type FileAnalysis struct {
	FilePath string  `json:"file_path"`
	Issues   []Issue `json:"issues"`
}

// IssuesCount は検出された問題数を返します
func (fa *FileAnalysis) IssuesCount() int {
	return len(fa.Issues)
}

// FixableIssues は自動修復の対象となる問題を返します
func (fa *FileAnalysis) FixableIssues() []Issue {
	var fixable []Issue
	for _, issue := range fa.Issues {
		if issue.Fixable {
			fixable = append(fixable, issue)
		}
	}
	return fixable
}

// ValidationResult は修復後の再検査結果です
type ValidationResult struct {
	ValidatedFiles  []FileAnalysis `json:"validated_files"`
	RemainingIssues int            `json:"remaining_issues"`
	TotalFixed      int            `json:"total_fixed"`
}

// RepairSummary は修復処理全体の集計です
type RepairSummary struct {
	FilesScanned    int              `json:"files_scanned"`
	FilesWithIssues int              `json:"files_with_issues"`
	IssuesDetected  int              `json:"issues_detected"`
	FixedFiles      []string         `json:"fixed_files"`
	Validation      ValidationResult `json:"validation"`
	TestsRan        bool             `json:"tests_ran"`
	TestsPassed     bool             `json:"tests_passed"`
	DryRun          bool             `json:"dry_run"`
	PackageManager  string           `json:"package_manager"`
}
