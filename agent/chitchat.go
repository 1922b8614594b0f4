package agent

import (
	"context"
	"strings"
	"time"

	"github.com/Ishan11032005GitHub/career-navigator-backend/core"
	"github.com/Ishan11032005GitHub/career-navigator-backend/gateway"
	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
)

// chitchatTimeout is the tightest budget of the three agents.
const chitchatTimeout = 10 * time.Second

// Chitchat handles anything the router could not place. No memory.
type Chitchat struct {
	gw     *gateway.Gateway
	logger logging.Logger
}

// NewChitchat wires a chitchat agent.
func NewChitchat(gw *gateway.Gateway, logger logging.Logger) *Chitchat {
	return &Chitchat{gw: gw, logger: logger}
}

// Name implements core.Agent.
func (a *Chitchat) Name() string { return "chitchat" }

// Handle implements core.Agent.
func (a *Chitchat) Handle(ctx context.Context, req core.AgentRequest) core.AgentResult {
	msg := strings.TrimSpace(req.Message)
	if msg == "" {
		return core.AgentResult{Reply: "I didn't catch that. Please provide a message."}
	}

	reply := strings.TrimSpace(a.gw.Invoke(ctx, "Answer conversationally and helpfully: "+msg, chitchatTimeout))
	if reply == "" {
		a.logger.Error("empty chitchat reply", "message", msg)
		return core.AgentResult{Reply: "I'm having trouble processing that. Could you please rephrase your question?"}
	}
	return core.AgentResult{Reply: reply}
}
