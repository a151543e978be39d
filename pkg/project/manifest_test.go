package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadManifest(t *testing.T) {
	root := t.TempDir()
	content := `{
  "name": "uberfix",
  "version": "1.2.0",
  "scripts": {"dev": "vite", "test": "vitest run"},
  "dependencies": {"react": "^18.3.1"},
  "devDependencies": {"typescript": "^5.5.0"}
}`
	require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFileName), []byte(content), 0o644))

	m, err := LoadManifest(root)
	require.NoError(t, err)

	assert.Equal(t, "uberfix", m.Name)
	assert.Equal(t, "1.2.0", m.Version)
	assert.Equal(t, "^18.3.1", m.Dependencies["react"])
	assert.Equal(t, "^5.5.0", m.DevDependencies["typescript"])
	assert.True(t, m.HasScript("test"))
	assert.False(t, m.HasScript("lint"))
}

func TestLoadManifest_Errors(t *testing.T) {
	t.Run("存在しない", func(t *testing.T) {
		_, err := LoadManifest(t.TempDir())
		assert.ErrorIs(t, err, ErrManifestNotFound)
	})

	t.Run("JSONが不正", func(t *testing.T) {
		root := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFileName), []byte("{"), 0o644))

		_, err := LoadManifest(root)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrManifestNotFound)
	})
}

func TestManifest_HasScriptNil(t *testing.T) {
	var m *Manifest
	assert.False(t, m.HasScript("test"))
}

func TestDetectPackageManager(t *testing.T) {
	tests := []struct {
		name  string
		files []string
		want  PackageManager
	}{
		{"ロックファイルなし", nil, PackageManagerNPM},
		{"pnpm", []string{"pnpm-lock.yaml"}, PackageManagerPNPM},
		{"yarn", []string{"yarn.lock"}, PackageManagerYarn},
		{"pnpmが優先", []string{"yarn.lock", "pnpm-lock.yaml"}, PackageManagerPNPM},
		{"package-lock.jsonはnpm", []string{"package-lock.json"}, PackageManagerNPM},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, f := range tt.files {
				require.NoError(t, os.WriteFile(filepath.Join(root, f), nil, 0o644))
			}
			assert.Equal(t, tt.want, DetectPackageManager(root))
		})
	}
}

func TestPackageManager_TestCommand(t *testing.T) {
	assert.Equal(t, []string{"pnpm", "test"}, PackageManagerPNPM.TestCommand())
	assert.Equal(t, []string{"npm", "test"}, PackageManagerNPM.TestCommand())
}
