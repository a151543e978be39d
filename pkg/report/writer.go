package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// TimestampLayout はファイル名に埋め込むタイムスタンプの形式です
const TimestampLayout = "20060102_150405"

// 同一秒内の衝突を避けるための連番の上限
const maxSuffix = 1000

// Writer はタイムスタンプ付きのファイル名でレポートを書き出します
// 既存のファイルは上書きしません
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter は新しいWriterを作成します
func NewWriter(dir string, now func() time.Time) *Writer {
	if now == nil {
		now = time.Now
	}
	return &Writer{dir: dir, now: now}
}

// Dir は出力先ディレクトリを返します
func (w *Writer) Dir() string {
	return w.dir
}

// Write は <prefix>_<YYYYmmdd_HHMMSS><ext> に data を書き込み、そのパスを返します
// 同名のファイルが存在する場合は _1, _2 ... を付加します
func (w *Writer) Write(prefix, ext string, data []byte) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory: %w", err)
	}

	base := fmt.Sprintf("%s_%s", prefix, w.now().Format(TimestampLayout))
	for i := 0; i < maxSuffix; i++ {
		name := base + ext
		if i > 0 {
			name = fmt.Sprintf("%s_%d%s", base, i, ext)
		}
		path := filepath.Join(w.dir, name)

		if err := CreateExclusive(path, data, 0o644); err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("failed to write %s: %w", name, err)
		}
		return path, nil
	}

	return "", fmt.Errorf("failed to find a free file name for %s%s", base, ext)
}

// writeContent はファイルへの書き込み処理です
var writeContent = func(f *os.File, data []byte) error {
	_, err := f.Write(data)
	return err
}

// CreateExclusive は path が存在しない場合にのみ新規作成して data を書き込みます
// 既に存在する場合は os.ErrExist を返し、書き込みに失敗した場合は作成したファイルを削除します
func CreateExclusive(path string, data []byte, perm os.FileMode) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if err := writeContent(f, data); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
