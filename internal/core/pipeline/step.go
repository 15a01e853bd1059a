package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/igupta/rivalscope/internal/core/memory"
	"github.com/igupta/rivalscope/internal/core/models"
)

// DefaultStepTimeout bounds one collaborator call so a hung external
// service cannot stall the whole pipeline.
const DefaultStepTimeout = 2 * time.Minute

// Operation is one collaborator invocation bound to a specific step. The
// returned summary goes into the step's completion message.
type Operation func(ctx context.Context) (summary string, err error)

// Runner executes one named pipeline step with uniform bookkeeping: every
// step produces exactly two messages (start, end) in the session history,
// whatever else it does.
type Runner struct {
	mem     *memory.Manager
	timeout time.Duration
	logf    func(format string, args ...any)
}

// NewRunner creates a step runner over a memory manager. A zero timeout
// falls back to DefaultStepTimeout.
func NewRunner(mem *memory.Manager, timeout time.Duration, logf func(string, ...any)) *Runner {
	if timeout <= 0 {
		timeout = DefaultStepTimeout
	}
	if logf == nil {
		logf = func(string, ...any) {}
	}
	return &Runner{mem: mem, timeout: timeout, logf: logf}
}

// Memory returns the memory manager the runner records into
func (r *Runner) Memory() *memory.Manager {
	return r.mem
}

// Run executes a single step: records a start message, invokes the
// operation under the step timeout, records the outcome, and persists the
// session. Failures come back as *StepFailure; the runner never retries.
func (r *Runner) Run(ctx context.Context, stepName string, stepIndex int, agentLabel string, op Operation) error {
	tag := map[string]any{"step": stepIndex, "agent": agentLabel}

	r.logf("[%d] %s...", stepIndex, stepName)
	r.mem.Record(models.RoleSystem, fmt.Sprintf("Starting %s", stepName), tag)

	stepCtx, cancel := context.WithTimeout(ctx, r.timeout)
	summary, err := op(stepCtx)
	cancel()

	if err != nil {
		r.mem.Record(models.RoleSystem, fmt.Sprintf("Failed %s: %v", stepName, err), tag)
		r.persist()
		return &StepFailure{Step: stepName, Cause: err}
	}

	content := fmt.Sprintf("Completed %s", stepName)
	if summary != "" {
		content = fmt.Sprintf("Completed %s: %s", stepName, summary)
	}
	r.mem.Record(models.RoleAssistant, content, tag)
	r.persist()
	return nil
}

// persist checkpoints the session after a step. A write failure is a
// warning, never data loss: in-memory history is intact and the run goes on.
func (r *Runner) persist() {
	if err := r.mem.Persist(); err != nil {
		r.logf("warning: %v", err)
	}
}
