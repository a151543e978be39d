package analyzer

import (
	"regexp"

	"github.com/uberfix/devtools/pkg/models"
)

type categoryRule struct {
	category models.FileCategory
	pattern  *regexp.Regexp
}

// categoryRules は宣言順に評価され、最初にマッチしたものが採用されます
var categoryRules = []categoryRule{
	{models.FileCategoryComponent, regexp.MustCompile(`\.(tsx|jsx)$`)},
	{models.FileCategoryTypeScript, regexp.MustCompile(`\.(ts|tsx)$`)},
	{models.FileCategoryJavaScript, regexp.MustCompile(`\.(js|jsx)$`)},
	{models.FileCategoryStylesheet, regexp.MustCompile(`\.(css|scss)$`)},
	{models.FileCategoryConfig, regexp.MustCompile(`\.(config\.(ts|js)|json)$`)},
	{models.FileCategoryTest, regexp.MustCompile(`\.(test|spec)\.(ts|tsx|js|jsx)$`)},
}

// Classify はファイル名から種別を判定します
// どのルールにもマッチしない場合は other を返します
func Classify(name string) models.FileCategory {
	for _, rule := range categoryRules {
		if rule.pattern.MatchString(name) {
			return rule.category
		}
	}
	return models.FileCategoryOther
}
