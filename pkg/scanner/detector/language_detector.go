package detector

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// LanguageDetector はファイルの言語名（linguist準拠）を判定します
type LanguageDetector struct{}

// NewLanguageDetector は新しいLanguageDetectorを作成します
func NewLanguageDetector() *LanguageDetector {
	return &LanguageDetector{}
}

// DetectLanguage はファイルパスと内容から言語名を判定します
// content が nil の場合は拡張子とファイル名のみで判定します
func (d *LanguageDetector) DetectLanguage(path string, content []byte) string {
	filename := filepath.Base(path)

	if content != nil {
		// go-enryで言語を判定（ファイル名と内容の両方を使用）
		return enry.GetLanguage(filename, content)
	}

	if lang, ok := enry.GetLanguageByFilename(filename); ok {
		return lang
	}
	if lang, ok := enry.GetLanguageByExtension(filename); ok {
		return lang
	}

	return ""
}

