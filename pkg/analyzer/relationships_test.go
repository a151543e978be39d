package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uberfix/devtools/pkg/models"
)

func fileRecord(p string, category models.FileCategory, sources ...string) models.FileRecord {
	rec := models.FileRecord{Path: p, Type: category}
	for _, s := range sources {
		rec.Imports = append(rec.Imports, models.ImportRecord{Type: models.ImportKindNamed, Source: s})
	}
	return rec
}

func sampleStructure() map[string]*models.DirectoryRecord {
	return map[string]*models.DirectoryRecord{
		"src": {
			Path: "src",
			Files: []models.FileRecord{
				fileRecord("src/App.tsx", models.FileCategoryComponent,
					"react", "./components/Header", "@/pages/Home", "./lib/api", "./components/Header"),
				fileRecord("src/main.tsx", models.FileCategoryComponent, "./App", "./index.css"),
			},
		},
		"src/components": {
			Path: "src/components",
			Files: []models.FileRecord{
				fileRecord("src/components/Header.tsx", models.FileCategoryComponent, "../ui", "../../../outside"),
				fileRecord("src/components/util.ts", models.FileCategoryTypeScript, "./Header"),
			},
		},
		"src/ui": {
			Path: "src/ui",
			Files: []models.FileRecord{
				fileRecord("src/ui/index.tsx", models.FileCategoryComponent),
			},
		},
		"src/pages": {
			Path: "src/pages",
			Files: []models.FileRecord{
				fileRecord("src/pages/Home.jsx", models.FileCategoryComponent),
			},
		},
		"src/lib": {
			Path: "src/lib",
			Files: []models.FileRecord{
				fileRecord("src/lib/api.ts", models.FileCategoryTypeScript),
			},
		},
	}
}

func TestBuildComponentsRelationships(t *testing.T) {
	relations := BuildComponentsRelationships(sampleStructure())

	assert.Equal(t, map[string][]string{
		"src/App.tsx":               {"src/components/Header.tsx", "src/pages/Home.jsx"},
		"src/main.tsx":              {"src/App.tsx"},
		"src/components/Header.tsx": {"src/ui/index.tsx"},
	}, relations)
}

func TestResolveImport(t *testing.T) {
	known := map[string]bool{
		"App.tsx":            true,
		"src/Button.tsx":     true,
		"src/forms/index.js": true,
	}

	tests := []struct {
		name     string
		source   string
		fromFile string
		want     string
		ok       bool
	}{
		{"ルート直下の相対パス", "./App", "main.tsx", "App.tsx", true},
		{"拡張子付き", "./Button.tsx", "src/App.tsx", "src/Button.tsx", true},
		{"index解決", "../forms", "src/pages/Home.tsx", "src/forms/index.js", true},
		{"エイリアス", "@/Button", "src/pages/Home.tsx", "src/Button.tsx", true},
		{"パッケージ", "react", "src/App.tsx", "", false},
		{"ルート外", "../../x", "src/App.tsx", "", false},
		{"未知のファイル", "./Missing", "src/App.tsx", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := resolveImport(tt.source, tt.fromFile, known)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuildDependenciesGraph(t *testing.T) {
	graph := BuildDependenciesGraph(sampleStructure())

	assert.Equal(t, []string{"./App", "./index.css"}, graph["src/main.tsx"])
	assert.Len(t, graph["src/App.tsx"], 5)

	// インポートのないファイルは含まれない
	_, ok := graph["src/lib/api.ts"]
	assert.False(t, ok)
	assert.Len(t, graph, 4)
}

func TestBuildFunctionsAnalysis(t *testing.T) {
	structure := map[string]*models.DirectoryRecord{
		"src": {
			Path: "src",
			Files: []models.FileRecord{
				{
					Path: "src/App.tsx",
					Functions: []models.FunctionRecord{
						{Name: "App", Type: models.FunctionKindComponent, File: "src/App.tsx"},
						{Name: "App", Type: models.FunctionKindArrow, File: "src/App.tsx"},
						{Name: "load", Type: models.FunctionKindPlain, File: "src/App.tsx"},
					},
				},
			},
		},
	}

	graph := BuildFunctionsAnalysis(structure)
	require.Len(t, graph, 2)

	// 同じキーは後のエントリで上書きされる
	node := graph["src/App.tsx::App"]
	assert.Equal(t, "src/App.tsx::App", node.Function.ID)
	assert.Equal(t, models.FunctionKindArrow, node.Function.Type)
	assert.NotNil(t, node.Calls)
	assert.Empty(t, node.Calls)
	assert.Empty(t, node.CalledBy)
	assert.Empty(t, node.Dependencies)

	assert.Equal(t, "load", graph["src/App.tsx::load"].Function.Name)
}
