// Package core defines the shared types exchanged between the HTTP layer,
// the dispatcher and the individual agents. It carries no behavior beyond
// trivial accessors so every other package can depend on it without cycles.
package core

import (
	"context"
	"errors"
)

// Intent is the coarse category assigned to an incoming message.
type Intent string

const (
	// IntentCareer routes to the career agent (resume analysis / restructure).
	IntentCareer Intent = "career"
	// IntentLearning routes to the learning agent (Q&A with thread memory).
	IntentLearning Intent = "learning"
	// IntentChat is the default conversational fallback.
	IntentChat Intent = "chat"
)

// ErrTimeout is returned by the dispatcher when an agent call does not
// complete within the caller's budget. Callers translate it into a
// "service timeout" response distinct from a generic failure.
var ErrTimeout = errors.New("agent call timed out")

// JobPost is a job posting as supplied by the persistence layer or the
// request body. Requirements are free-form skill keywords.
type JobPost struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Requirements []string `json:"requirements"`
	MatchScore   int      `json:"match_score,omitempty"`
}

// AgentRequest is the per-call input assembled by the API layer. It is
// owned by the call stack and never retained by an agent.
type AgentRequest struct {
	Message    string    `json:"message"`
	ResumeText string    `json:"resume_text,omitempty"`
	JobPosts   []JobPost `json:"job_posts,omitempty"`
	ThreadID   string    `json:"thread_id,omitempty"`
}

// AgentResult is what an agent hands back up the stack. Reply is always
// non-empty; the remaining fields are populated only by the career
// agent's restructure branch.
type AgentResult struct {
	Reply     string `json:"reply"`
	PDFPath   string `json:"pdf_path,omitempty"`
	LatexCode string `json:"latex_code,omitempty"`
	Intent    Intent `json:"intent,omitempty"`
}

// Agent turns a natural-language request into a reply, possibly invoking
// the LLM gateway and/or the document compiler. Implementations must
// return a result with a non-empty Reply on every path.
type Agent interface {
	Name() string
	Handle(ctx context.Context, req AgentRequest) AgentResult
}
