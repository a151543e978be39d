package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uberfix/devtools/pkg/models"
	"github.com/uberfix/devtools/pkg/report"
	"github.com/uberfix/devtools/pkg/scanner"
	"github.com/uberfix/devtools/pkg/scanner/filter"
)

var analysisTime = time.Date(2026, 10, 18, 9, 30, 15, 0, time.UTC)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func newTestAnalyzer(t *testing.T, root string) *Analyzer {
	t.Helper()
	f, err := filter.NewIgnoreFilter(root, []string{"node_modules", "dist", "build", ".git", "backups"}, false)
	require.NoError(t, err)
	walker := scanner.NewWalker(f, []string{filepath.Join(root, "reports")}, nil)
	return NewAnalyzer(walker, nil, func() time.Time { return analysisTime }, nil)
}

func sampleProject(t *testing.T) string {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"package.json": `{"name":"uberfix","version":"2.0.0","dependencies":{"react":"^18.3.1"}}`,
		"src/App.tsx": `import React from 'react';
import { Header } from './components/Header';

export const App = () => {
  console.log('render');
  return <Header />;
};
`,
		"src/components/Header.tsx": `export const Header = () => {
  const [open, setOpen] = useState(false);
  return null;
};
`,
		"src/lib/api.ts": `export function getOrders(id: any) {
  return fetch('/orders/' + id);
}
`,
		"src/App.css":                 ".app { color: red; }\n",
		"node_modules/react/index.js": "module.exports = {};\n",
		"dist/assets/index.js":        "console.log(1);\n",
		"reports/old.json":            "{}",
		"docs/notes.md":               "# notes\n",
	})
	return root
}

func TestAnalyzer_Analyze(t *testing.T) {
	root := sampleProject(t)

	result, err := newTestAnalyzer(t, root).Analyze(context.Background(), root)
	require.NoError(t, err)

	// 無視対象とレポート出力先はディレクトリとして現れない
	assert.ElementsMatch(t, []string{"ROOT", "docs", "src", "src/components", "src/lib"}, result.SortedDirectoryPaths())
	assert.Equal(t, []string{"docs", "src"}, result.FileStructure["ROOT"].Subfolders)

	src := result.FileStructure["src"]
	assert.Equal(t, "directory", src.Type)
	assert.Equal(t, "ソースコードのメインディレクトリ", src.Description)
	require.Len(t, src.Files, 2)
	assert.Equal(t, "App.css", src.Files[0].Name)
	assert.Equal(t, models.FileCategoryStylesheet, src.Files[0].Type)
	assert.Empty(t, src.Files[0].Functions)
	assert.Equal(t, "CSS", src.Files[0].Language)

	app := src.Files[1]
	assert.Equal(t, "src/App.tsx", app.Path)
	assert.Equal(t, models.FileCategoryComponent, app.Type)
	assert.Equal(t, "アプリケーションのルートコンポーネント", app.Description)
	assert.Equal(t, 7, app.LinesOfCode)
	assert.NotEmpty(t, app.Language)
	require.Len(t, app.Functions, 2)
	assert.Equal(t, models.FunctionKindComponent, app.Functions[0].Type)
	assert.Equal(t, models.FunctionKindArrow, app.Functions[1].Type)

	api := result.FileStructure["src/lib"].Files[0]
	assert.Equal(t, "ユーティリティと補助関数", api.Description)
	assert.Equal(t, []string{"fetch("}, api.Dependencies)
	assert.Equal(t, "データ取得関数", api.Functions[0].Description)

	info := result.ProjectInfo
	assert.Equal(t, "uberfix", info.Name)
	assert.Equal(t, "2.0.0", info.Version)
	assert.Equal(t, "npm", info.PackageManager)
	assert.Equal(t, analysisTime, info.GeneratedAt)
	assert.Equal(t, 5, info.TotalDirectories)
	assert.Equal(t, 6, info.TotalFiles)
	assert.Equal(t, 5, info.TotalFunctions)

	assert.Contains(t, result.FunctionsAnalysis, "src/lib/api.ts::getOrders")
	assert.Equal(t, []string{"react", "./components/Header"}, result.DependenciesGraph["src/App.tsx"])
	assert.Equal(t, map[string][]string{
		"src/App.tsx": {"src/components/Header.tsx"},
	}, result.ComponentsRelationships)

	// 検出された問題はパス順
	require.Len(t, result.ArchitectureIssues, 2)
	assert.Equal(t, "src/App.tsx", result.ArchitectureIssues[0].File)
	assert.Equal(t, models.IssueTypeConsoleLog, result.ArchitectureIssues[0].Type)
	assert.Equal(t, "src/lib/api.ts", result.ArchitectureIssues[1].File)
	assert.Equal(t, models.IssueTypeAnyType, result.ArchitectureIssues[1].Type)

	assert.Equal(t, DefaultRecommendations, result.Recommendations)
}

func TestAnalyzer_RerunIsByteIdentical(t *testing.T) {
	root := sampleProject(t)
	a := newTestAnalyzer(t, root)

	first, err := a.Analyze(context.Background(), root)
	require.NoError(t, err)
	firstJSON, err := report.RenderJSON(first)
	require.NoError(t, err)

	// レポートの出力は次回の解析結果に影響しない
	_, err = report.WriteArchitecture(report.NewWriter(filepath.Join(root, "reports"), nil), first)
	require.NoError(t, err)

	second, err := a.Analyze(context.Background(), root)
	require.NoError(t, err)
	secondJSON, err := report.RenderJSON(second)
	require.NoError(t, err)

	assert.Equal(t, string(firstJSON), string(secondJSON))
}

func TestAnalyzer_UnreadableContent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"src/legacy.js": string([]byte{0xff, 0xfe, 'x'}),
	})

	result, err := newTestAnalyzer(t, root).Analyze(context.Background(), root)
	require.NoError(t, err)

	rec := result.FileStructure["src"].Files[0]
	assert.NotEmpty(t, rec.Error)
	assert.Equal(t, 0, rec.LinesOfCode)
	assert.Empty(t, rec.Functions)
	require.Len(t, result.ArchitectureIssues, 1)
	assert.Equal(t, models.IssueTypeReadError, result.ArchitectureIssues[0].Type)
}

func TestAnalyzer_RootNotFound(t *testing.T) {
	root := filepath.Join(t.TempDir(), "missing")

	_, err := newTestAnalyzer(t, t.TempDir()).Analyze(context.Background(), root)
	assert.ErrorIs(t, err, scanner.ErrRootNotFound)
}

func TestAnalyzer_Canceled(t *testing.T) {
	root := sampleProject(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestAnalyzer(t, root).Analyze(ctx, root)
	assert.ErrorIs(t, err, context.Canceled)
}
