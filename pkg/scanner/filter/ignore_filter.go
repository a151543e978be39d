package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// IgnoreFileName はプロジェクト固有の除外パターンファイル名です
const IgnoreFileName = ".devtoolsignore"

// IgnoreFilter はディレクトリ名の除外セットと、.gitignore 形式のパターンマッチングを提供します
type IgnoreFilter struct {
	dirNames map[string]bool
	patterns *gitignore.GitIgnore
}

// NewIgnoreFilter は新しいIgnoreFilterを作成します
// dirNames は名前一致で常に除外するディレクトリ、
// root 配下の .devtoolsignore は常に、.gitignore は respectGitignore の場合のみ読み込みます
func NewIgnoreFilter(root string, dirNames []string, respectGitignore bool) (*IgnoreFilter, error) {
	names := make(map[string]bool, len(dirNames))
	for _, name := range dirNames {
		names[name] = true
	}

	var patterns []string

	// .gitignore を読み込み
	if respectGitignore {
		lines, err := readIgnoreFileIfExists(filepath.Join(root, ".gitignore"))
		if err != nil {
			return nil, fmt.Errorf("failed to read .gitignore: %w", err)
		}
		patterns = append(patterns, lines...)
	}

	// .devtoolsignore を読み込み
	lines, err := readIgnoreFileIfExists(filepath.Join(root, IgnoreFileName))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", IgnoreFileName, err)
	}
	patterns = append(patterns, lines...)

	var matcher *gitignore.GitIgnore
	if len(patterns) > 0 {
		matcher = gitignore.CompileIgnoreLines(patterns...)
	}

	return &IgnoreFilter{
		dirNames: names,
		patterns: matcher,
	}, nil
}

// ShouldSkipDir はディレクトリを走査対象から外すかどうかを判定します
// relPath はルートからのスラッシュ区切り相対パスです
func (f *IgnoreFilter) ShouldSkipDir(relPath string) bool {
	if f.dirNames[filepath.Base(relPath)] {
		return true
	}
	if f.patterns == nil {
		return false
	}
	return f.patterns.MatchesPath(relPath) || f.patterns.MatchesPath(relPath+"/")
}

// ShouldIgnoreFile はファイルが除外対象かどうかを判定します
// 名前一致の除外セットはディレクトリにのみ適用されます
func (f *IgnoreFilter) ShouldIgnoreFile(relPath string) bool {
	if f.patterns == nil {
		return false
	}
	return f.patterns.MatchesPath(relPath)
}

// readIgnoreFileIfExists は ignore ファイルを読み込んでパターンのスライスを返します
// ファイルが存在しない場合は空を返します
func readIgnoreFileIfExists(path string) ([]string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		// 空行とコメント行をスキップ
		if line == "" || line[0] == '#' {
			continue
		}
		patterns = append(patterns, line)
	}

	return patterns, nil
}
