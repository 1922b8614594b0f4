// Package agent implements the intent router and the three agents it
// dispatches to: career (resume analysis / restructure), learning (Q&A
// with per-thread memory) and chitchat.
package agent

import (
	"strings"

	"github.com/Ishan11032005GitHub/career-navigator-backend/core"
)

var (
	careerVocab   = []string{"job", "resume", "apply", "hiring", "role"}
	learningVocab = []string{"learn", "teach", "quiz", "study", "path"}
)

// Classify assigns an intent by counting career vs learning vocabulary
// hits in the lower-cased message. Career wins only on a strictly greater
// count; otherwise any learning hit selects learning; otherwise chat.
// Pure function of the message text.
func Classify(message string) core.Intent {
	text := strings.ToLower(message)

	careerHits := 0
	for _, kw := range careerVocab {
		if strings.Contains(text, kw) {
			careerHits++
		}
	}
	learnHits := 0
	for _, kw := range learningVocab {
		if strings.Contains(text, kw) {
			learnHits++
		}
	}

	switch {
	case careerHits > learnHits:
		return core.IntentCareer
	case learnHits > 0:
		return core.IntentLearning
	default:
		return core.IntentChat
	}
}
