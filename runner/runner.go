// Package runner executes agent calls on a bounded worker pool so a slow
// LLM or compiler invocation cannot block the request-accepting path.
// Dispatch is the single entry point the HTTP layer talks to.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/Ishan11032005GitHub/career-navigator-backend/agent"
	"github.com/Ishan11032005GitHub/career-navigator-backend/core"
	"github.com/Ishan11032005GitHub/career-navigator-backend/logging"
)

// Options hold dependency and configuration overrides passed to New.
type Options struct {
	// Workers bounds concurrently executing agent calls.
	Workers int
	// WaitTimeout is the caller-side budget for one dispatch, covering
	// both queueing for a worker slot and the agent call itself.
	WaitTimeout time.Duration
	Logger      logging.Logger
}

// Dispatcher classifies a request and runs the selected agent on a pool
// worker, converting budget expiry into core.ErrTimeout. Safe for
// concurrent use.
type Dispatcher struct {
	career   core.Agent
	learning core.Agent
	chitchat core.Agent

	slots       chan struct{}
	waitTimeout time.Duration
	logger      logging.Logger
}

// New constructs a Dispatcher over the three agents.
func New(career, learning, chitchat core.Agent, optFns ...func(o *Options)) *Dispatcher {
	opts := Options{
		Workers:     10,
		WaitTimeout: 60 * time.Second,
		Logger:      logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Dispatcher{
		career:      career,
		learning:    learning,
		chitchat:    chitchat,
		slots:       make(chan struct{}, opts.Workers),
		waitTimeout: opts.WaitTimeout,
		logger:      opts.Logger,
	}
}

// Dispatch classifies the message and runs the selected agent. See
// DispatchIntent for the waiting semantics.
func (d *Dispatcher) Dispatch(ctx context.Context, req core.AgentRequest) (core.AgentResult, error) {
	return d.DispatchIntent(ctx, agent.Classify(req.Message), req)
}

// DispatchIntent runs the agent for a fixed intent (the dedicated career
// and learning endpoints bypass classification) and waits for its result
// within the configured budget. On expiry the wait is abandoned and
// core.ErrTimeout returned; the worker keeps its slot until the agent's
// own context times out, so abandoned work cannot pile up unbounded.
// A successful result always carries a non-empty Reply and an intent tag.
func (d *Dispatcher) DispatchIntent(ctx context.Context, intent core.Intent, req core.AgentRequest) (core.AgentResult, error) {
	ag := d.agentFor(intent)

	timer := time.NewTimer(d.waitTimeout)
	defer timer.Stop()

	select {
	case d.slots <- struct{}{}:
	case <-timer.C:
		d.logger.Error("dispatch timed out waiting for worker", "agent", ag.Name())
		return core.AgentResult{}, core.ErrTimeout
	case <-ctx.Done():
		return core.AgentResult{}, ctx.Err()
	}

	// The agent runs under its own deadline, detached from the caller's
	// context: an abandoned wait must not cancel a compile mid-flight,
	// but the work still terminates within the same overall budget.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.waitTimeout)

	resCh := make(chan core.AgentResult, 1)
	errCh := make(chan error, 1)
	go func() {
		defer cancel()
		defer func() { <-d.slots }()
		defer func() {
			if r := recover(); r != nil {
				d.logger.Error("agent panicked", "agent", ag.Name(), "panic", r)
				errCh <- fmt.Errorf("agent %s panicked: %v", ag.Name(), r)
			}
		}()
		start := time.Now()
		res := ag.Handle(runCtx, req)
		d.logger.Info("agent completed", "agent", ag.Name(), "duration", time.Since(start))
		resCh <- res
	}()

	select {
	case res := <-resCh:
		if res.Intent == "" {
			res.Intent = intent
		}
		return res, nil
	case err := <-errCh:
		return core.AgentResult{}, err
	case <-timer.C:
		d.logger.Error("dispatch timed out waiting for agent", "agent", ag.Name())
		return core.AgentResult{}, core.ErrTimeout
	case <-ctx.Done():
		return core.AgentResult{}, ctx.Err()
	}
}

func (d *Dispatcher) agentFor(intent core.Intent) core.Agent {
	switch intent {
	case core.IntentCareer:
		return d.career
	case core.IntentLearning:
		return d.learning
	default:
		return d.chitchat
	}
}
