package repair

import (
	"path"
	"sort"
	"strings"

	"github.com/uberfix/devtools/pkg/scanner"
)

// SourceDir は修復対象のソースが置かれるディレクトリです
const SourceDir = "src"

// src 配下で収集する拡張子
var sourceExtensions = map[string]bool{
	".tsx":  true,
	".ts":   true,
	".jsx":  true,
	".js":   true,
	".css":  true,
	".json": true,
}

// ツリーのどこにあっても収集する設定ファイルの接尾辞
var configSuffixes = []string{".config.ts", ".config.js"}

// Source は修復対象のファイルです
type Source struct {
	// RelPath はルートからのスラッシュ区切りの相対パス
	RelPath string
	AbsPath string
}

// IsSourceFile は相対パスが修復対象かどうかを判定します
func IsSourceFile(relPath string) bool {
	name := path.Base(relPath)
	for _, suffix := range configSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	if !strings.HasPrefix(relPath, SourceDir+"/") {
		return false
	}
	return sourceExtensions[strings.ToLower(path.Ext(name))]
}

// CollectSources はウォーカーでツリーを走査し、修復対象のファイルをパス順で返します
func CollectSources(walker *scanner.Walker, root string) ([]Source, error) {
	var sources []Source
	err := walker.Walk(root, func(dir scanner.Directory) error {
		for _, f := range dir.Files {
			if IsSourceFile(f.RelPath) {
				sources = append(sources, Source{RelPath: f.RelPath, AbsPath: f.AbsPath})
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(sources, func(i, j int) bool { return sources[i].RelPath < sources[j].RelPath })
	return sources, nil
}
