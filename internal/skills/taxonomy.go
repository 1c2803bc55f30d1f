// Package skills detects taxonomy skills in resume text and scores them.
package skills

// Category is a named group of lowercase skill keywords.
type Category struct {
	Name     string
	Keywords []string
}

// Taxonomy is the fixed skill catalog in declaration order.
var Taxonomy = []Category{
	{Name: "programming", Keywords: []string{"python", "java", "javascript", "c++", "sql", "ruby", "php", "swift", "kotlin"}},
	{Name: "frameworks", Keywords: []string{"react", "angular", "vue", "django", "flask", "spring", "laravel", "express", "node.js"}},
	{Name: "databases", Keywords: []string{"mysql", "postgresql", "mongodb", "redis", "oracle", "sqlite", "elasticsearch"}},
	{Name: "cloud", Keywords: []string{"aws", "azure", "gcp", "docker", "kubernetes", "terraform", "jenkins", "ci/cd"}},
	{Name: "tools", Keywords: []string{"git", "jira", "confluence", "slack", "trello", "bitbucket", "github"}},
	{Name: "soft_skills", Keywords: []string{"leadership", "communication", "problem-solving", "teamwork", "project management"}},
	{Name: "ai_ml", Keywords: []string{"machine learning", "deep learning", "tensorflow", "pytorch", "scikit-learn", "nlp"}},
	{Name: "mobile", Keywords: []string{"android", "ios", "react native", "flutter", "mobile development"}},
	{Name: "web", Keywords: []string{"html", "css", "sass", "less", "webpack", "babel", "rest api", "graphql"}},
}
