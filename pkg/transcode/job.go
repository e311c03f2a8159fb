package transcode

import (
	"context"
	"fmt"
	"sync"
)

// Job wraps one transcode run with an abandon handle. Abandon may be
// called from any goroutine, at any time, any number of times; a job that
// already finished keeps its result.
type Job struct {
	ctrl *Controller
	src  []byte
	opts Options

	mu        sync.Mutex
	cancel    context.CancelFunc
	abandoned bool
	done      bool
	artifact  *Artifact
	err       error
}

// NewJob prepares a job. Nothing runs until Run is called.
func NewJob(ctrl *Controller, src []byte, opts Options) *Job {
	return &Job{ctrl: ctrl, src: src, opts: opts}
}

// Run executes the job. It may be called once; a second call returns the
// recorded result of the first.
func (j *Job) Run(ctx context.Context) (*Artifact, error) {
	j.mu.Lock()
	if j.done {
		artifact, err := j.artifact, j.err
		j.mu.Unlock()
		return artifact, err
	}
	if j.abandoned {
		j.done = true
		j.err = fmt.Errorf("%w: abandoned before start", ErrCancelled)
		err := j.err
		j.mu.Unlock()
		return nil, err
	}
	runCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.mu.Unlock()

	artifact, err := j.ctrl.Transcode(runCtx, j.src, j.opts)
	cancel()

	j.mu.Lock()
	j.done = true
	j.artifact = artifact
	j.err = err
	j.mu.Unlock()

	return artifact, err
}

// Abandon forces the job onto its failure path. Idempotent: repeated calls
// and calls after natural completion are no-ops.
func (j *Job) Abandon() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.abandoned = true
	if j.cancel != nil {
		j.cancel()
	}
}

// Done reports whether Run has returned.
func (j *Job) Done() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.done
}

// Result returns the recorded outcome once Run has returned.
func (j *Job) Result() (*Artifact, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.artifact, j.err
}
