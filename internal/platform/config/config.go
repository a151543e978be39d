package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultIgnoreDirs は走査から常に除外するディレクトリ名です
var DefaultIgnoreDirs = []string{"node_modules", "dist", "build", ".git", "backups"}

// Config はツール全体の設定を保持します
type Config struct {
	// ProjectRoot は解析・修復対象のプロジェクトルート
	ProjectRoot string

	// ReportsDir はレポートの出力先
	ReportsDir string

	// Scan設定
	Scan ScanConfig

	// Repair設定
	Repair RepairConfig

	// Log設定
	Log LogConfig
}

// ScanConfig はディレクトリ走査の設定
type ScanConfig struct {
	IgnoreDirs       []string
	RespectGitignore bool
	DescriptionsFile string
}

// RepairConfig は修復処理の設定
type RepairConfig struct {
	TestTimeout time.Duration
}

// LogConfig はロガーの設定値
type LogConfig struct {
	Level  slog.Level
	Format string // "json" or "text"
}

// Load は環境変数または.envファイルから設定を読み込みます
func Load(envFilePath string) (*Config, error) {
	// .envファイルが存在する場合は読み込む
	if envFilePath != "" {
		if err := godotenv.Load(envFilePath); err != nil {
			// ファイルが存在しない場合はエラーとしない（環境変数のみで動作可能）
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load .env file: %w", err)
			}
		}
	}

	root := getEnv("DEVTOOLS_PROJECT_ROOT", ".")

	cfg := &Config{
		ProjectRoot: root,
		ReportsDir:  getEnv("DEVTOOLS_REPORTS_DIR", ""),
		Scan: ScanConfig{
			IgnoreDirs:       append(append([]string{}, DefaultIgnoreDirs...), getEnvAsList("DEVTOOLS_IGNORE_DIRS")...),
			RespectGitignore: getEnvAsBool("DEVTOOLS_RESPECT_GITIGNORE", false),
			DescriptionsFile: getEnv("DEVTOOLS_DESCRIPTIONS_FILE", ""),
		},
		Repair: RepairConfig{
			TestTimeout: time.Duration(getEnvAsInt("DEVTOOLS_TEST_TIMEOUT_SECONDS", 300)) * time.Second,
		},
		Log: LogConfig{
			Level:  parseLevel(getEnv("DEVTOOLS_LOG_LEVEL", "info")),
			Format: getEnv("DEVTOOLS_LOG_FORMAT", "text"),
		},
	}

	return cfg, nil
}

// SetProjectRoot はルートを差し替え、絶対パスに正規化します
func (c *Config) SetProjectRoot(root string) error {
	abs, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}
	c.ProjectRoot = abs
	return nil
}

// ResolvedReportsDir はレポート出力先を返します
// 未指定の場合は <root>/reports
func (c *Config) ResolvedReportsDir() string {
	if c.ReportsDir != "" {
		return c.ReportsDir
	}
	return filepath.Join(c.ProjectRoot, "reports")
}

// getEnv は環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt は環境変数を整数として取得します
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool は環境変数を真偽値として取得します
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsList はカンマ区切りの環境変数をスライスとして取得します
func getEnvAsList(key string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
