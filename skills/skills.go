// Package skills implements the local resume-analysis heuristics: skill
// extraction against a fixed vocabulary and naive overlap-based job
// ranking. Everything here is pure and deterministic.
package skills

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Ishan11032005GitHub/career-navigator-backend/core"
)

// vocabulary is the fixed skills set matched against resume text.
var vocabulary = []string{
	"python", "java", "c++", "sql", "mongodb", "mysql", "react", "node",
	"express", "aws", "docker", "kubernetes", "git", "rest", "linux",
	"pandas", "numpy", "tensorflow", "pytorch",
}

// Analysis is the outcome of scanning a resume.
type Analysis struct {
	Skills      []string `json:"skills"`
	Suggestions []string `json:"suggestions"`
}

// Analyze detects known skills in the resume text (word-boundary match,
// case-insensitive) and derives improvement suggestions from what is
// missing. Skills are returned sorted and deduplicated.
func Analyze(resumeText string) Analysis {
	lower := strings.ToLower(resumeText)

	found := make(map[string]bool)
	for _, skill := range vocabulary {
		if matchSkill(lower, skill) {
			found[skill] = true
		}
	}
	detected := make([]string, 0, len(found))
	for s := range found {
		detected = append(detected, s)
	}
	sort.Strings(detected)

	var suggestions []string
	if !found["sql"] {
		suggestions = append(suggestions, "Add SQL with a concrete bullet (e.g., optimized 5 complex joins)")
	}
	if !found["aws"] {
		suggestions = append(suggestions, "Mention basic cloud skills (AWS/GCP/Azure) if relevant")
	}
	if !found["react"] && !found["node"] {
		suggestions = append(suggestions, "If applying for full-stack, include React/Node exposure")
	}

	return Analysis{Skills: detected, Suggestions: suggestions}
}

// matchSkill matches a vocabulary entry on word boundaries. Entries with
// non-word runes (c++) fall back to a substring check since \b does not
// apply cleanly to them.
func matchSkill(text, skill string) bool {
	if regexp.QuoteMeta(skill) != skill {
		return strings.Contains(text, skill)
	}
	re := regexp.MustCompile(`\b` + skill + `\b`)
	return re.MatchString(text)
}

// MatchJobs ranks postings by the number of required skills overlapping
// the detected skill set (descending). The sort is stable so tied
// postings keep their input order. Each returned posting carries its
// overlap count in MatchScore; the input slice is not mutated.
func MatchJobs(detected []string, posts []core.JobPost) []core.JobPost {
	skillSet := make(map[string]bool, len(detected))
	for _, s := range detected {
		skillSet[strings.ToLower(s)] = true
	}

	ranked := make([]core.JobPost, len(posts))
	copy(ranked, posts)
	for i := range ranked {
		score := 0
		for _, req := range ranked[i].Requirements {
			if skillSet[strings.ToLower(req)] {
				score++
			}
		}
		ranked[i].MatchScore = score
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].MatchScore > ranked[j].MatchScore
	})
	return ranked
}

// LearningPath produces a five-day study plan for a topic.
func LearningPath(topic string) []string {
	base := titleCase(strings.TrimSpace(topic))
	return []string{
		base + ": Day 1 — Core concepts & hello world",
		base + ": Day 2 — Practice problems & mini project",
		base + ": Day 3 — Build a tiny app and write a README",
		base + ": Day 4 — Add tests & refactor",
		base + ": Day 5 — Ship a demo and share on GitHub",
	}
}

// titleCase upper-cases the first rune of each space-separated word and
// lower-cases the rest.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + strings.ToLower(string(r[1:]))
	}
	return strings.Join(words, " ")
}

// QA is a quiz question/answer pair.
type QA struct {
	Question string `json:"q"`
	Answer   string `json:"a"`
}

// QuickQuiz returns a short topic quiz, with canned questions for the
// topics the fallback responder also knows about.
func QuickQuiz(topic string) []QA {
	t := strings.ToLower(strings.TrimSpace(topic))
	if strings.Contains(t, "sql") {
		return []QA{
			{Question: "What does SELECT do?", Answer: "Retrieves rows/columns from a table."},
			{Question: "Write a query to get all names from employees.", Answer: "SELECT name FROM employees;"},
		}
	}
	if strings.Contains(t, "python") {
		return []QA{
			{Question: "What is a list comprehension?", Answer: "A compact syntax to create lists: [f(x) for x in xs]"},
			{Question: "How do you create a virtual environment?", Answer: "python -m venv .venv && source .venv/bin/activate"},
		}
	}
	return []QA{
		{Question: "Name 2 fundamentals of " + topic, Answer: "Answers vary"},
		{Question: "Suggest a tiny project in " + topic, Answer: "Answers vary"},
	}
}
