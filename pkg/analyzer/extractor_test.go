package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uberfix/devtools/pkg/models"
)

const sampleComponent = `import React, { useState } from 'react';
import * as api from "./api";
import './App.css';

const Header = (props): JSX => {
  return null;
};

function handleClick(event) {
  console.log(event);
}

export const Dashboard = () => {
  const [x, setX] = useState(0);
  return null;
};

const useAuth = () => {
  return supabase.auth;
};

export default Dashboard;
export { Header, handleClick };
`

func TestExtractFunctions(t *testing.T) {
	functions := ExtractFunctions(sampleComponent, "src/App.tsx")

	type got struct {
		name string
		kind models.FunctionKind
	}
	var actual []got
	for _, f := range functions {
		actual = append(actual, got{f.Name, f.Type})
		assert.Equal(t, "src/App.tsx", f.File)
	}

	// パターン順に並び、重複（Dashboard）は除去されない
	assert.Equal(t, []got{
		{"Header", models.FunctionKindComponent},
		{"handleClick", models.FunctionKindPlain},
		{"Dashboard", models.FunctionKindComponent},
		{"Dashboard", models.FunctionKindArrow},
		{"useAuth", models.FunctionKindArrow},
		{"Auth", models.FunctionKindHook},
	}, actual)

	assert.Equal(t, "props", functions[0].Parameters)
	assert.Equal(t, "event", functions[1].Parameters)
	assert.Equal(t, "", functions[2].Parameters)
}

func TestExtractImports(t *testing.T) {
	imports := ExtractImports(sampleComponent)

	assert.Equal(t, []models.ImportRecord{
		{Type: models.ImportKindNamed, Source: "react", Elements: "React, { useState }"},
		{Type: models.ImportKindNamed, Source: "./api", Elements: "* as api"},
		{Type: models.ImportKindNamespace, Source: "./api"},
		{Type: models.ImportKindDefault, Source: "./App.css"},
	}, imports)
}

func TestExtractExports(t *testing.T) {
	exports := ExtractExports(sampleComponent)

	assert.Equal(t, []models.ExportRecord{
		{Type: models.ExportKindNamed, Elements: "Dashboard"},
		{Type: models.ExportKindDefault, Elements: "Dashboard"},
		{Type: models.ExportKindMulti, Elements: "Header, handleClick"},
	}, exports)
}

func TestExtractDependencies(t *testing.T) {
	deps := ExtractDependencies(sampleComponent)
	assert.Equal(t, []string{"supabase.auth", "useState"}, deps)

	content := "axios.get(url); window.fetch(x); fetch(y); localStorage.setItem(); useEffect(() => {});"
	assert.Equal(t, []string{".fetch(", "axios.get", "fetch(", "localStorage.", "useEffect"}, ExtractDependencies(content))
}

func TestExtract_EmptyContent(t *testing.T) {
	ex := Extract("", "src/empty.ts")

	assert.NotNil(t, ex.Functions)
	assert.Empty(t, ex.Functions)
	assert.Empty(t, ex.Imports)
	assert.Empty(t, ex.Exports)
	assert.Empty(t, ex.Dependencies)
	assert.Equal(t, 0, ex.LinesOfCode)
}

func TestExtract_StringLookalikesAreNotFiltered(t *testing.T) {
	// ヒューリスティックなので文字列リテラル内の宣言もマッチする
	content := "const doc = \"function fake(a) {\";\n"
	functions := ExtractFunctions(content, "src/doc.ts")
	require.Len(t, functions, 1)
	assert.Equal(t, "fake", functions[0].Name)
}

func TestExtract_NonASCIIIdentifiers(t *testing.T) {
	content := "const عرضالخريطة = (props) => {\n  return null;\n};\n\n" +
		"function حذفالطلب(id) {\n  return id;\n}\n\n" +
		"export const الطلبات = 1;\n" +
		"import * as خدمات from './services';\n"

	functions := ExtractFunctions(content, "src/Map.tsx")
	require.Len(t, functions, 2)
	assert.Equal(t, "حذفالطلب", functions[0].Name)
	assert.Equal(t, models.FunctionKindPlain, functions[0].Type)
	assert.Equal(t, "id", functions[0].Parameters)
	assert.Equal(t, "عرضالخريطة", functions[1].Name)
	assert.Equal(t, models.FunctionKindArrow, functions[1].Type)

	exports := ExtractExports(content)
	require.Len(t, exports, 1)
	assert.Equal(t, "الطلبات", exports[0].Elements)

	imports := ExtractImports(content)
	assert.Contains(t, imports, models.ImportRecord{Type: models.ImportKindNamespace, Source: "./services"})
}

func TestCountLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    int
	}{
		{"空", "", 0},
		{"改行なし", "a", 1},
		{"末尾改行", "a\nb\n", 2},
		{"末尾改行なし", "a\nb", 2},
		{"CRLF", "a\r\nb\r\n", 2},
		{"空行を含む", "a\n\nb", 3},
		{"フォームフィード", "a b\fc\n", 2},
		{"垂直タブ", "a\vb", 2},
		{"区切り文字", "a\x1cb\x1dc\x1ed", 4},
		{"NEL", "a\u0085b\u0085", 2},
		{"行区切りと段落区切り", "a\u2028b\u2029c", 3},
		{"CRLFと単独CR", "a\r\n\rb", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CountLines(tt.content))
		})
	}
}

func TestFunctionDescription(t *testing.T) {
	tests := []struct {
		name     string
		funcName string
		kind     models.FunctionKind
		want     string
	}{
		{"コンポーネント", "Header", models.FunctionKindComponent, "UIを描画するReactコンポーネント"},
		{"useで始まるHook", "useCart", models.FunctionKindHook, "Cart の状態を管理するカスタムHook"},
		{"useを除いたHook名", "Cart", models.FunctionKindHook, "処理関数"},
		{"ハンドラ", "submitHandler", models.FunctionKindArrow, "イベント・操作のハンドラ"},
		{"取得", "getOrders", models.FunctionKindPlain, "データ取得関数"},
		{"設定", "settle", models.FunctionKindPlain, "データ設定関数"},
		{"更新", "updateOrder", models.FunctionKindPlain, "データ更新関数"},
		{"削除", "deleteOrder", models.FunctionKindPlain, "データ削除関数"},
		{"その他", "render", models.FunctionKindPlain, "処理関数"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FunctionDescription(tt.funcName, tt.kind))
		})
	}
}
