package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Ishan11032005GitHub/career-navigator-backend/core"
	"github.com/Ishan11032005GitHub/career-navigator-backend/gateway"
	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
	"github.com/Ishan11032005GitHub/career-navigator-backend/memory"
)

// learningTimeout is shorter than the career budget: conversational
// replies have a tighter latency expectation.
const learningTimeout = 15 * time.Second

// contextWindow is how many recent exchanges are embedded in the prompt.
const contextWindow = 2

// Learning answers free-form questions with short-term context pulled
// from the thread store, and records each exchange back into it.
type Learning struct {
	gw     *gateway.Gateway
	store  *memory.ThreadStore
	logger logging.Logger
}

// NewLearning wires a learning agent.
func NewLearning(gw *gateway.Gateway, store *memory.ThreadStore, logger logging.Logger) *Learning {
	return &Learning{gw: gw, store: store, logger: logger}
}

// Name implements core.Agent.
func (a *Learning) Name() string { return "learning" }

// Handle implements core.Agent.
func (a *Learning) Handle(ctx context.Context, req core.AgentRequest) core.AgentResult {
	topic := strings.TrimSpace(req.Message)
	if topic == "" {
		return core.AgentResult{Reply: "Please provide a topic or question to learn about."}
	}
	thread := req.ThreadID
	if thread == "" {
		thread = "default"
	}

	history := a.store.Get(thread)
	contextText := "No previous context"
	if len(history) > 0 {
		if len(history) > contextWindow {
			history = history[len(history)-contextWindow:]
		}
		contextText = strings.Join(history, "\n")
	}

	prompt := fmt.Sprintf(`You are a helpful learning mentor.
Previous:
%s
Question: %q
Answer briefly (under 300 words) with clear explanations and actionable steps.`, contextText, topic)

	reply := strings.TrimSpace(a.gw.Invoke(ctx, prompt, learningTimeout))
	if reply == "" {
		a.logger.Error("empty learning reply", "topic", topic)
		reply = fmt.Sprintf("I couldn't generate a detailed response for '%s'. Please try rephrasing your question or provide more context.", topic)
	}

	a.store.Append(thread, fmt.Sprintf("User: %s\nAssistant: %s", topic, reply))
	return core.AgentResult{Reply: reply}
}
