package gateway

import "strings"

// FallbackResponse produces a deterministic, locally computed reply keyed
// on keywords in the prompt. It is the terminal tier of the gateway: it
// keeps the system answering when no provider credentials are configured
// or every remote call failed.
func FallbackResponse(prompt string) string {
	p := strings.ToLower(prompt)

	if containsAny(p, "resume", "cv", "career", "job", "apply") {
		return `I can help you with resume optimization and career guidance.

Upload your resume text and I can:
- Identify skill gaps
- Suggest improvements
- Generate a professional LaTeX resume
- Recommend tailored job roles.`
	}
	if containsAny(p, "sql", "database") {
		return `**SQL Learning Path**
1. SELECT, WHERE, ORDER BY
2. INSERT, UPDATE, DELETE
3. JOINS (INNER, LEFT, RIGHT)
4. GROUP BY, HAVING
5. Subqueries and indexes.`
	}
	if strings.Contains(p, "python") {
		return `**Python Learning Guide**
- Basics: variables, loops, functions
- Data structures: lists, dicts, sets
- OOP principles
- Libraries: Pandas, Flask, Requests`
	}
	if containsAny(p, "javascript", "web") {
		return `**JavaScript Web Dev**
- DOM manipulation
- Async (Promises, async/await)
- React, Node.js basics`
	}
	if containsAny(p, "learn", "study") {
		return `**Smart Learning Tips**
1. Set goals
2. Practice consistently
3. Build small projects
4. Review and iterate.`
	}
	return "I'm ready to help you with resume, job advice, or learning new tech topics. What would you like to focus on?"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
