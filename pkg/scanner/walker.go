package scanner

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/uberfix/devtools/pkg/models"
	"github.com/uberfix/devtools/pkg/scanner/filter"
)

// RootKey はルートディレクトリを表すキーです
const RootKey = models.RootDirectoryKey

// ErrRootNotFound はルートディレクトリが存在しない場合のエラーです
var ErrRootNotFound = errors.New("project root does not exist")

// Directory は1回の訪問で得られるディレクトリ情報です
type Directory struct {
	// Key はルートからの相対パス（ルート自身は ROOT）
	Key        string
	AbsPath    string
	Files      []File
	Subfolders []string
}

// File はディレクトリ直下のファイルです
type File struct {
	Name    string
	RelPath string
	AbsPath string
	Size    int64
	// StatErr はサイズ取得に失敗した場合のエラー
	StatErr error
}

// Walker はプロジェクトツリーを深さ優先で走査します
type Walker struct {
	filter   *filter.IgnoreFilter
	excludes []string
	logger   *slog.Logger
}

// NewWalker は新しいWalkerを作成します
// excludes に渡した絶対パスのディレクトリは走査から外れます（レポート出力先など）
func NewWalker(ignoreFilter *filter.IgnoreFilter, excludes []string, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}

	cleaned := make([]string, 0, len(excludes))
	for _, e := range excludes {
		if e == "" {
			continue
		}
		if abs, err := filepath.Abs(e); err == nil {
			cleaned = append(cleaned, abs)
		}
	}

	return &Walker{
		filter:   ignoreFilter,
		excludes: cleaned,
		logger:   logger,
	}
}

// Walk は root 配下のディレクトリを辞書順の深さ優先で訪問し、visit を呼び出します
// 一覧取得に失敗したディレクトリは結果に含まれません
// visit がエラーを返した場合は走査を中断します
func (w *Walker) Walk(root string, visit func(Directory) error) error {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve root: %w", err)
	}

	info, err := os.Stat(absRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, absRoot)
		}
		return fmt.Errorf("failed to stat root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, absRoot)
	}

	return w.walkDir(absRoot, "", visit)
}

func (w *Walker) walkDir(absRoot, rel string, visit func(Directory) error) error {
	absDir := filepath.Join(absRoot, filepath.FromSlash(rel))

	entries, err := os.ReadDir(absDir)
	if err != nil {
		w.logger.Debug("ディレクトリの読み込みに失敗したためスキップします", "path", absDir, "error", err)
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	dir := Directory{
		Key:        rel,
		AbsPath:    absDir,
		Files:      []File{},
		Subfolders: []string{},
	}
	if rel == "" {
		dir.Key = RootKey
	}

	var walkable []string
	for _, entry := range entries {
		name := entry.Name()
		childRel := joinRel(rel, name)
		childAbs := filepath.Join(absDir, name)

		isDir := entry.IsDir()
		isLink := entry.Type()&fs.ModeSymlink != 0
		var target fs.FileInfo
		var targetErr error
		if isLink {
			// シンボリックリンクは辿らないが、リンク先がディレクトリならサブフォルダとして記録する
			target, targetErr = os.Stat(childAbs)
			if targetErr == nil && target.IsDir() {
				isDir = true
			}
		}

		if isDir {
			if w.filter != nil && w.filter.ShouldSkipDir(childRel) {
				continue
			}
			if w.isExcluded(childAbs) {
				continue
			}
			dir.Subfolders = append(dir.Subfolders, name)
			if !isLink {
				walkable = append(walkable, childRel)
			}
			continue
		}

		if w.filter != nil && w.filter.ShouldIgnoreFile(childRel) {
			continue
		}

		file := File{
			Name:    name,
			RelPath: childRel,
			AbsPath: childAbs,
		}
		// シンボリックリンクのサイズはリンク先のものを使う
		fi, statErr := target, targetErr
		if !isLink {
			fi, statErr = entry.Info()
		}
		if statErr != nil {
			file.StatErr = statErr
		} else {
			file.Size = fi.Size()
		}
		dir.Files = append(dir.Files, file)
	}

	if err := visit(dir); err != nil {
		return err
	}

	for _, childRel := range walkable {
		if err := w.walkDir(absRoot, childRel, visit); err != nil {
			return err
		}
	}

	return nil
}

func (w *Walker) isExcluded(absPath string) bool {
	for _, e := range w.excludes {
		if absPath == e {
			return true
		}
	}
	return false
}

// joinRel はスラッシュ区切りの相対パスを連結します
func joinRel(parent, name string) string {
	if parent == "" {
		return name
	}
	return parent + "/" + name
}

