// Package pipeline runs an ordered list of named steps strictly one after another.
//
// A run moves through Pending(i) -> Running(i) -> Pending(i+1) ... -> Completed. A failing
// Fatal step moves it to Failed(i, err) and nothing after it runs; a failing Continue step
// is reported and the run advances.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"wp-starter/internal/logger"
)

// Phase is the coarse state of a run.
type Phase int

const (
	Pending Phase = iota
	Running
	Failed
	Completed
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Failed:
		return "failed"
	case Completed:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Policy decides what a step failure does to the run.
type Policy int

const (
	// Fatal stops the run at the failing step.
	Fatal Policy = iota
	// Continue reports the failure and moves on.
	Continue
)

func (p Policy) String() string {
	if p == Continue {
		return "continue"
	}
	return "fatal"
}

// Step is one named unit of work over the run context C.
type Step[C any] struct {
	Name   string
	Policy Policy
	Run    func(ctx context.Context, rc C) error
}

// State is a snapshot of the run. Index and Step refer to the current step; Err is set
// only in the Failed phase.
type State struct {
	Phase Phase
	Index int
	Step  string
	Err   error
}

// StepError is returned by Run when a Fatal step fails or the run is cancelled.
type StepError struct {
	Index int
	Name  string
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index+1, e.Name, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }

// Result records how one step ended.
type Result struct {
	Index   int
	Name    string
	Policy  Policy
	Err     error
	Elapsed time.Duration
}

// Observer receives step lifecycle events in order.
type Observer interface {
	StepStarted(index int, name string)
	StepFinished(result Result)
}

// Runner executes a fixed step list against one run context.
type Runner[C any] struct {
	steps     []Step[C]
	observers []Observer

	mu      sync.Mutex
	state   State
	results []Result
}

// New returns a Runner for steps. Observers are notified in the order given.
func New[C any](steps []Step[C], observers ...Observer) *Runner[C] {
	r := &Runner[C]{steps: steps, observers: observers}
	r.state = State{Phase: Pending}
	if len(steps) > 0 {
		r.state.Step = steps[0].Name
	}
	return r
}

// State returns the current state of the run.
func (r *Runner[C]) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Results returns one entry per step that finished, in order.
func (r *Runner[C]) Results() []Result {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Result, len(r.results))
	copy(out, r.results)
	return out
}

func (r *Runner[C]) setState(s State) {
	r.mu.Lock()
	r.state = s
	r.mu.Unlock()
	logger.Debug("[DEBUG] Pipeline %s(%d) %s\n", s.Phase, s.Index, s.Step)
}

// Run executes every step in order, waiting for each to signal completion before the next
// starts. It returns a *StepError for a failed Fatal step or a cancelled ctx, nil otherwise.
func (r *Runner[C]) Run(ctx context.Context, rc C) error {
	for i, step := range r.steps {
		if err := ctx.Err(); err != nil {
			return r.fail(i, step.Name, err)
		}

		r.setState(State{Phase: Running, Index: i, Step: step.Name})
		for _, o := range r.observers {
			o.StepStarted(i, step.Name)
		}

		start := time.Now()
		done := make(chan error, 1)
		go func() {
			defer func() {
				if p := recover(); p != nil {
					done <- fmt.Errorf("panic: %v", p)
				}
			}()
			done <- step.Run(ctx, rc)
		}()

		var err error
		select {
		case err = <-done:
		case <-ctx.Done():
			err = ctx.Err()
		}

		res := Result{Index: i, Name: step.Name, Policy: step.Policy, Err: err, Elapsed: time.Since(start)}
		r.mu.Lock()
		r.results = append(r.results, res)
		r.mu.Unlock()
		for _, o := range r.observers {
			o.StepFinished(res)
		}

		if err != nil && (step.Policy == Fatal || ctx.Err() != nil) {
			return r.fail(i, step.Name, err)
		}

		if i+1 < len(r.steps) {
			r.setState(State{Phase: Pending, Index: i + 1, Step: r.steps[i+1].Name})
		}
	}

	r.setState(State{Phase: Completed, Index: len(r.steps)})
	return nil
}

func (r *Runner[C]) fail(i int, name string, err error) error {
	r.setState(State{Phase: Failed, Index: i, Step: name, Err: err})
	return &StepError{Index: i, Name: name, Err: err}
}
