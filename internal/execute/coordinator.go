// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"

	"github.com/runnables-cli/runnables/pkg/runnable"
	"github.com/runnables-cli/runnables/pkg/types"
)

type (
	// Runner executes one composed command.
	Runner interface {
		Run(ctx context.Context, step Step) (types.ExitCode, error)
	}

	// StepResult is the outcome of one step. Err is set when the command could
	// not be started; a command that ran and failed only has a non-zero ExitCode.
	StepResult struct {
		Step     Step
		ExitCode types.ExitCode
		Err      error
	}

	// Report collects the outcome of every executed step, in order.
	Report struct {
		Plan    *Plan
		Results []StepResult
	}

	// Coordinator plans and executes runnables.
	Coordinator struct {
		runner    Runner
		observer  func(StepResult)
		stepStart func(step Step, total int)
	}

	// Option configures a Coordinator.
	Option func(*Coordinator)
)

// WithObserver registers fn to be called after every step.
func WithObserver(fn func(StepResult)) Option {
	return func(c *Coordinator) { c.observer = fn }
}

// WithStepStart registers fn to be called before every step with the number
// of steps in the plan.
func WithStepStart(fn func(step Step, total int)) Option {
	return func(c *Coordinator) { c.stepStart = fn }
}

// New creates a Coordinator that executes steps with runner.
func New(runner Runner, opts ...Option) *Coordinator {
	c := &Coordinator{runner: runner}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run executes chosen after its whole "after" chain. Steps run strictly in
// sequence; failures are recorded and the chain continues. Only planning
// errors and cancellation stop the run.
func (c *Coordinator) Run(ctx context.Context, chosen runnable.Runnable, all []runnable.Runnable) (*Report, error) {
	plan, err := NewPlan(chosen, all)
	if err != nil {
		return nil, err
	}

	report := &Report{Plan: plan}
	for _, step := range plan.Steps {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if c.stepStart != nil {
			c.stepStart(step, len(plan.Steps))
		}
		code, runErr := c.runner.Run(ctx, step)
		result := StepResult{Step: step, ExitCode: code, Err: runErr}
		report.Results = append(report.Results, result)
		if c.observer != nil {
			c.observer(result)
		}
	}
	return report, nil
}

// Success reports whether the step ran and exited zero.
func (r StepResult) Success() bool {
	return r.Err == nil && r.ExitCode.IsSuccess()
}

// Failed returns the results that did not succeed.
func (r *Report) Failed() []StepResult {
	var out []StepResult
	for _, res := range r.Results {
		if !res.Success() {
			out = append(out, res)
		}
	}
	return out
}

// Final returns the chosen runnable's own result.
func (r *Report) Final() (StepResult, bool) {
	if len(r.Results) == 0 || len(r.Results) < len(r.Plan.Steps) {
		return StepResult{}, false
	}
	return r.Results[len(r.Results)-1], true
}
