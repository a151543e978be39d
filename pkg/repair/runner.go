package repair

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// 強制終了後に出力パイプが閉じられるのを待つ上限
const waitDelay = 5 * time.Second

// TestOutcome はプロジェクトのテスト実行結果の種類です
type TestOutcome string

const (
	TestOutcomePassed  TestOutcome = "passed"
	TestOutcomeFailed  TestOutcome = "failed"
	TestOutcomeTimeout TestOutcome = "timeout"
	TestOutcomeError   TestOutcome = "error"
)

// TestResult はテストコマンドの実行結果です
type TestResult struct {
	Outcome TestOutcome
	Stderr  string
	Err     error
}

// Passed はテストが成功したかを返します
func (r TestResult) Passed() bool {
	return r.Outcome == TestOutcomePassed
}

// TestRunner はプロジェクトのテストコマンドを実行します
type TestRunner interface {
	Run(ctx context.Context, dir string, args []string) TestResult
}

// ExecRunner はサブプロセスとしてテストコマンドを実行するTestRunnerです
type ExecRunner struct {
	timeout time.Duration
}

// NewExecRunner は新しいExecRunnerを作成します
// timeout が0以下の場合はタイムアウトしません
func NewExecRunner(timeout time.Duration) *ExecRunner {
	return &ExecRunner{timeout: timeout}
}

// Run は dir をカレントディレクトリとしてコマンドを実行します
// 再試行は行いません
func (r *ExecRunner) Run(ctx context.Context, dir string, args []string) TestResult {
	if len(args) == 0 {
		return TestResult{Outcome: TestOutcomeError, Err: errors.New("empty test command")}
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	switch {
	case err == nil:
		return TestResult{Outcome: TestOutcomePassed}
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return TestResult{Outcome: TestOutcomeTimeout, Stderr: stderr.String(), Err: ctx.Err()}
	case ctx.Err() != nil:
		return TestResult{Outcome: TestOutcomeError, Stderr: stderr.String(), Err: ctx.Err()}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return TestResult{Outcome: TestOutcomeFailed, Stderr: stderr.String(), Err: err}
	}
	return TestResult{Outcome: TestOutcomeError, Stderr: stderr.String(), Err: fmt.Errorf("failed to run %s: %w", args[0], err)}
}
