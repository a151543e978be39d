package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// ANSI color codes
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
)

// Console は人向けの出力を担当します
// 出力先が端末の場合のみ色を付けます
type Console struct {
	out   io.Writer
	color bool
}

// NewConsole は新しいConsoleを作成します
func NewConsole(out io.Writer) *Console {
	color := false
	if f, ok := out.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &Console{out: out, color: color}
}

func (c *Console) paint(code, s string) string {
	if !c.color {
		return s
	}
	return code + s + colorReset
}

// Heading は区切り線付きの見出しを出力します
func (c *Console) Heading(title string) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(c.out, rule)
	fmt.Fprintln(c.out, c.paint(colorBold+colorCyan, title))
	fmt.Fprintln(c.out, rule)
}

// Printf は書式付きで1行出力します
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format+"\n", args...)
}

// Success は成功メッセージを出力します
func (c *Console) Success(format string, args ...any) {
	fmt.Fprintln(c.out, c.paint(colorGreen, fmt.Sprintf(format, args...)))
}

// Failure は失敗メッセージを出力します
func (c *Console) Failure(format string, args ...any) {
	fmt.Fprintln(c.out, c.paint(colorRed, fmt.Sprintf(format, args...)))
}

// Excerpt は text の先頭 n 行を出力します
func (c *Console) Excerpt(text string, n int) {
	lines := strings.Split(text, "\n")
	if len(lines) > n {
		lines = lines[:n]
	}
	for _, l := range lines {
		fmt.Fprintln(c.out, l)
	}
}
