package project

import (
	"os"
	"path/filepath"
)

// PackageManager はJavaScriptのパッケージマネージャーです
type PackageManager string

const (
	PackageManagerNPM  PackageManager = "npm"
	PackageManagerPNPM PackageManager = "pnpm"
	PackageManagerYarn PackageManager = "yarn"
)

// ロックファイルの優先順
var lockFiles = []struct {
	name    string
	manager PackageManager
}{
	{"pnpm-lock.yaml", PackageManagerPNPM},
	{"yarn.lock", PackageManagerYarn},
}

// DetectPackageManager はロックファイルからパッケージマネージャーを判定します
// どちらも無い場合は npm です
func DetectPackageManager(root string) PackageManager {
	for _, lf := range lockFiles {
		if _, err := os.Stat(filepath.Join(root, lf.name)); err == nil {
			return lf.manager
		}
	}
	return PackageManagerNPM
}

// TestCommand は「<pm> test」のコマンドライン引数を返します
func (pm PackageManager) TestCommand() []string {
	return []string{string(pm), "test"}
}
