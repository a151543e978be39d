package project

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestFileName はnpmプロジェクトのマニフェストファイル名です
const ManifestFileName = "package.json"

// ErrManifestNotFound はルートに package.json が存在しない場合のエラーです
var ErrManifestNotFound = errors.New("package.json not found")

// Manifest は package.json のうち利用するフィールドです
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Scripts         map[string]string `json:"scripts"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

// LoadManifest は root 直下の package.json を読み込みます
func LoadManifest(root string) (*Manifest, error) {
	path := filepath.Join(root, ManifestFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrManifestNotFound
		}
		return nil, fmt.Errorf("failed to read %s: %w", ManifestFileName, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ManifestFileName, err)
	}

	return &m, nil
}

// HasScript は指定した名前のnpmスクリプトが定義されているかを返します
func (m *Manifest) HasScript(name string) bool {
	if m == nil {
		return false
	}
	_, ok := m.Scripts[name]
	return ok
}
