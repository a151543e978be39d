package repair

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/uberfix/devtools/pkg/report"
)

const maxBackupSuffix = 1000

// WriteBackup は修正前の内容を <file>.backup.<YYYYmmdd_HHMMSS> に保存し、そのパスを返します
// 同名のバックアップが既にある場合は .1, .2 ... を付加し、既存のバックアップを上書きしません
func WriteBackup(absPath string, content []byte, perm os.FileMode, now time.Time) (string, error) {
	base := fmt.Sprintf("%s.backup.%s", absPath, now.Format(report.TimestampLayout))

	for i := 0; i < maxBackupSuffix; i++ {
		path := base
		if i > 0 {
			path = fmt.Sprintf("%s.%d", base, i)
		}

		if err := report.CreateExclusive(path, content, perm); err != nil {
			if errors.Is(err, os.ErrExist) {
				continue
			}
			return "", fmt.Errorf("failed to write backup: %w", err)
		}
		return path, nil
	}

	return "", fmt.Errorf("failed to find a free backup name for %s", absPath)
}
