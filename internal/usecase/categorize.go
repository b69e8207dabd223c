package usecase

import (
	"slices"
	"strings"

	"github.com/naka-gawa/repo-insights/internal/domain"
)

// DefaultCategory is returned when neither keywords nor language match.
const DefaultCategory = "General"

type category struct {
	name     string
	keywords []string
}

// categories are checked in order; the first match wins.
var categories = []category{
	{"Web Framework", []string{"react", "vue", "angular", "express", "django", "flask", "rails"}},
	{"Mobile Development", []string{"android", "ios", "react-native", "flutter", "ionic", "xamarin"}},
	{"Machine Learning", []string{"ml", "ai", "tensorflow", "pytorch", "scikit-learn", "keras"}},
	{"DevOps & Tools", []string{"docker", "kubernetes", "ci-cd", "deployment", "monitoring"}},
	{"Database", []string{"database", "sql", "mongodb", "redis", "postgresql", "mysql"}},
	{"Game Development", []string{"game", "unity", "unreal", "godot", "phaser"}},
	{"Blockchain", []string{"blockchain", "crypto", "bitcoin", "ethereum", "web3"}},
	{"Data Science", []string{"data-science", "analytics", "visualization", "jupyter"}},
	{"Security", []string{"security", "auth", "encryption", "cybersecurity"}},
	{"CLI Tool", []string{"cli", "command-line", "terminal", "tool"}},
	{"Library", []string{"library", "sdk", "api", "framework"}},
	{"Educational", []string{"tutorial", "learning", "course", "example", "demo"}},
}

var languageCategories = map[string]string{
	"javascript": "Web Development",
	"typescript": "Web Development",
	"php":        "Web Development",
	"ruby":       "Web Development",
	"python":     "Data Science",
	"java":       "Enterprise",
	"c#":         "Enterprise",
	"go":         "Systems Programming",
	"rust":       "Systems Programming",
	"c++":        "Systems Programming",
	"swift":      "Mobile Development",
	"kotlin":     "Mobile Development",
}

// Categorize assigns a repository to a single category. Topics must equal a
// keyword; description, name and language only need to contain it.
func Categorize(repo domain.Repository) string {
	topics := make([]string, 0, len(repo.Topics))
	for _, t := range repo.Topics {
		topics = append(topics, strings.ToLower(t))
	}
	description := strings.ToLower(repo.Description)
	name := strings.ToLower(repo.Name)
	language := strings.ToLower(repo.Language)

	for _, c := range categories {
		for _, kw := range c.keywords {
			if slices.Contains(topics, kw) ||
				strings.Contains(description, kw) ||
				strings.Contains(name, kw) ||
				strings.Contains(language, kw) {
				return c.name
			}
		}
	}

	if c, ok := languageCategories[language]; ok {
		return c
	}
	return DefaultCategory
}
