package services

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// DefaultDebounce is how long a student's refresh requests must stay quiet
// before a recomputation runs.
const DefaultDebounce = 300 * time.Millisecond

// RefreshFunc receives each freshly computed history view.
type RefreshFunc func(studentID string, history *StudentHistory)

// ProgressRefresher coalesces bursts of refresh requests per student. Each
// request resets the student's debounce window; only the request generation
// that is still newest when a recomputation finishes gets delivered, so a
// slow run can never overwrite a newer one.
type ProgressRefresher struct {
	progress  ProgressService
	onRefresh RefreshFunc
	logger    *slog.Logger
	debounce  time.Duration

	mu     sync.Mutex
	states map[string]*refreshState
	closed bool
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

type refreshState struct {
	timer   *time.Timer
	gen     uint64
	running bool
	dirty   bool
}

func NewProgressRefresher(progress ProgressService, onRefresh RefreshFunc, logger *slog.Logger) *ProgressRefresher {
	return &ProgressRefresher{
		progress:  progress,
		onRefresh: onRefresh,
		logger:    logger,
		debounce:  DefaultDebounce,
		states:    make(map[string]*refreshState),
	}
}

// WithDebounce overrides the debounce window. Intended for tests.
func (r *ProgressRefresher) WithDebounce(d time.Duration) *ProgressRefresher {
	r.debounce = d
	return r
}

func (r *ProgressRefresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.closed = false
}

// Stop cancels pending timers and waits for in-flight recomputations.
func (r *ProgressRefresher) Stop() {
	r.mu.Lock()
	r.closed = true
	for _, st := range r.states {
		if st.timer != nil {
			st.timer.Stop()
		}
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	r.wg.Wait()
}

// Request asks for the student's history to be recomputed. Calls within the
// debounce window collapse into one run.
func (r *ProgressRefresher) Request(studentID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}

	st := r.states[studentID]
	if st == nil {
		st = &refreshState{}
		r.states[studentID] = st
	}

	st.gen++
	gen := st.gen
	if st.timer != nil {
		st.timer.Stop()
	}
	st.timer = time.AfterFunc(r.debounce, func() {
		r.fire(studentID, gen)
	})
}

func (r *ProgressRefresher) fire(studentID string, gen uint64) {
	r.mu.Lock()
	st := r.states[studentID]
	if st == nil || r.closed || gen != st.gen {
		r.mu.Unlock()
		return
	}
	if st.running {
		// A recomputation is already in flight; it reruns when done.
		st.dirty = true
		r.mu.Unlock()
		return
	}
	st.running = true
	r.wg.Add(1)
	r.mu.Unlock()

	go r.run(studentID, gen)
}

func (r *ProgressRefresher) run(studentID string, gen uint64) {
	defer r.wg.Done()

	ctx := r.ctx
	if ctx == nil {
		ctx = context.Background()
	}

	for {
		history, err := r.progress.GetStudentHistory(ctx, studentID)

		r.mu.Lock()
		st := r.states[studentID]
		if st == nil || r.closed {
			if st != nil {
				st.running = false
			}
			r.mu.Unlock()
			return
		}
		fresh := gen == st.gen
		rerun := st.dirty
		if rerun {
			st.dirty = false
			gen = st.gen
		} else {
			st.running = false
		}
		r.mu.Unlock()

		switch {
		case !fresh:
			r.logger.Debug("Discarding stale progress refresh", "student_id", studentID)
		case err != nil:
			r.logger.Error("Progress refresh failed", "student_id", studentID, "error", err)
		default:
			r.onRefresh(studentID, history)
		}

		if !rerun {
			return
		}
	}
}
