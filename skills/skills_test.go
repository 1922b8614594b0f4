package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ishan11032005GitHub/career-navigator-backend/core"
)

func TestAnalyze_DetectsSkills(t *testing.T) {
	resume := "Built dashboards in Python with SQL and Pandas; deployed on AWS using Docker."
	a := Analyze(resume)
	assert.Equal(t, []string{"aws", "docker", "pandas", "python", "sql"}, a.Skills)
}

func TestAnalyze_WordBoundary(t *testing.T) {
	// "javap" must not count as java, but "c++" matches by substring.
	a := Analyze("ran javap on the class files, wrote c++ services")
	assert.NotContains(t, a.Skills, "java")
	assert.Contains(t, a.Skills, "c++")
}

func TestAnalyze_Suggestions(t *testing.T) {
	a := Analyze("Experienced React and Node developer with SQL and AWS.")
	assert.Empty(t, a.Suggestions)

	b := Analyze("I write Python scripts.")
	require.Len(t, b.Suggestions, 3)
	assert.Contains(t, b.Suggestions[0], "SQL")
	assert.Contains(t, b.Suggestions[1], "cloud")
	assert.Contains(t, b.Suggestions[2], "full-stack")
}

func TestMatchJobs_RanksByOverlap(t *testing.T) {
	posts := []core.JobPost{
		{Title: "Frontend Dev", Requirements: []string{"react", "javascript"}},
		{Title: "Data Engineer", Requirements: []string{"sql", "python", "aws"}},
	}

	ranked := MatchJobs([]string{"sql", "python"}, posts)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Data Engineer", ranked[0].Title)
	assert.Equal(t, 2, ranked[0].MatchScore)
	assert.Equal(t, "Frontend Dev", ranked[1].Title)
	assert.Equal(t, 0, ranked[1].MatchScore)

	// Input slice is left untouched.
	assert.Equal(t, 0, posts[0].MatchScore)
	assert.Equal(t, "Frontend Dev", posts[0].Title)
}

func TestMatchJobs_StableOnTies(t *testing.T) {
	posts := []core.JobPost{
		{Title: "A", Requirements: []string{"sql"}},
		{Title: "B", Requirements: []string{"python"}},
		{Title: "C", Requirements: []string{"sql"}},
	}
	ranked := MatchJobs([]string{"sql", "python"}, posts)
	assert.Equal(t, "A", ranked[0].Title)
	assert.Equal(t, "B", ranked[1].Title)
	assert.Equal(t, "C", ranked[2].Title)
}

func TestMatchJobs_CaseInsensitive(t *testing.T) {
	posts := []core.JobPost{{Title: "X", Requirements: []string{"SQL", "Python"}}}
	ranked := MatchJobs([]string{"sql", "python"}, posts)
	assert.Equal(t, 2, ranked[0].MatchScore)
}

func TestLearningPath(t *testing.T) {
	path := LearningPath("machine learning")
	require.Len(t, path, 5)
	for i, step := range path {
		assert.Contains(t, step, "Machine Learning", "step %d", i)
	}
	assert.Contains(t, path[0], "Day 1")
	assert.Contains(t, path[4], "Day 5")
}

func TestLearningPath_TitleCasing(t *testing.T) {
	// Shouting and multi-byte first runes both normalize per word.
	assert.Contains(t, LearningPath("machine LEARNING")[0], "Machine Learning: Day 1")
	assert.Contains(t, LearningPath("élixir basics")[0], "Élixir Basics: Day 1")
}

func TestQuickQuiz(t *testing.T) {
	sql := QuickQuiz("Advanced SQL")
	require.Len(t, sql, 2)
	assert.Contains(t, sql[0].Question, "SELECT")

	py := QuickQuiz("python")
	assert.Contains(t, py[0].Question, "list comprehension")

	other := QuickQuiz("rust")
	require.Len(t, other, 2)
	assert.Contains(t, other[0].Question, "rust")
}
