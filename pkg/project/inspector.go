package project

import (
	"errors"
	"log/slog"
	"path/filepath"

	"github.com/uberfix/devtools/pkg/models"
)

// Inspect はプロジェクト全体の概要を収集します
// マニフェストやGit情報が取得できなくてもエラーにはせず、分かった範囲で返します
func Inspect(root string, logger *slog.Logger) models.ProjectInfo {
	if logger == nil {
		logger = slog.Default()
	}

	info := models.ProjectInfo{
		Name:           filepath.Base(root),
		Root:           root,
		PackageManager: string(DetectPackageManager(root)),
	}

	manifest, err := LoadManifest(root)
	switch {
	case err == nil:
		if manifest.Name != "" {
			info.Name = manifest.Name
		}
		info.Version = manifest.Version
		info.Dependencies = manifest.Dependencies
		info.DevDependencies = manifest.DevDependencies
	case errors.Is(err, ErrManifestNotFound):
		logger.Debug("package.jsonが見つかりません", "root", root)
	default:
		logger.Warn("package.jsonの読み込みに失敗しました", "error", err)
	}

	repo, err := InspectRepository(root)
	switch {
	case err == nil:
		info.Repository = repo
	case errors.Is(err, ErrNotRepository):
		logger.Debug("Gitリポジトリではありません", "root", root)
	default:
		logger.Warn("Gitリポジトリ情報の取得に失敗しました", "error", err)
	}

	return info
}
