package repair

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/uberfix/devtools/pkg/models"
)

var errInvalidUTF8 = errors.New("invalid UTF-8 content")

var scriptExtensions = map[string]bool{
	".tsx": true,
	".ts":  true,
	".jsx": true,
	".js":  true,
}

// 検出に使うリテラル
const (
	anyTypeMarker     = ": any"
	consoleLogMarker  = "console.log"
	reactUsageMarker  = "React."
	reactImportMarker = "import React"
	testPathMarker    = "test"
)

// Detect はファイル内容からリテラルパターンに基づく問題を検出します
// relPath はルートからの相対パスで、拡張子の判定とテストファイルの除外に使います
func Detect(relPath string, content string) []models.Issue {
	issues := []models.Issue{}
	ext := strings.ToLower(path.Ext(relPath))

	if scriptExtensions[ext] {
		if strings.Contains(content, anyTypeMarker) {
			issues = append(issues, models.Issue{
				File:    relPath,
				Type:    models.IssueTypeAnyType,
				Message: "any 型の使用は推奨されません",
				Fixable: true,
			})
		}

		if strings.Contains(content, consoleLogMarker) && !strings.Contains(relPath, testPathMarker) {
			issues = append(issues, models.Issue{
				File:    relPath,
				Type:    models.IssueTypeConsoleLog,
				Message: "本番コードに console.log が含まれています",
				Fixable: true,
			})
		}

		if needsReactImport(content) {
			issues = append(issues, models.Issue{
				File:    relPath,
				Type:    models.IssueTypeMissingReactImport,
				Message: "React を直接参照していますが import がありません",
				Fixable: true,
			})
		}
	}

	if ext == ".json" && !json.Valid([]byte(content)) {
		issues = append(issues, models.Issue{
			File:    relPath,
			Type:    models.IssueTypeInvalidJSON,
			Message: "JSON が不正です",
			Fixable: true,
		})
	}

	return issues
}

// DetectFile はファイルを読み込んで問題を検出します
// 読み込めない場合やUTF-8でない場合は READ_ERROR を返します
func DetectFile(src Source) models.FileAnalysis {
	analysis := models.FileAnalysis{FilePath: src.RelPath}

	data, err := os.ReadFile(src.AbsPath)
	if err == nil && !utf8.Valid(data) {
		err = errInvalidUTF8
	}
	if err != nil {
		analysis.Issues = []models.Issue{{
			File:    src.RelPath,
			Type:    models.IssueTypeReadError,
			Message: fmt.Sprintf("読み込みエラー: %v", err),
			Fixable: false,
		}}
		return analysis
	}

	analysis.Issues = Detect(src.RelPath, string(data))
	return analysis
}

func needsReactImport(content string) bool {
	return strings.Contains(content, reactUsageMarker) && !strings.Contains(content, reactImportMarker)
}
