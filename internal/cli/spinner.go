package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/treemap/pkg/observability"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner animates one status line naming the pipeline stage in progress.
// It stops on its own when the context is cancelled.
type Spinner struct {
	out    io.Writer
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc

	started bool
	stopped chan struct{}
	once    sync.Once

	mu      sync.Mutex
	message string
	drawn   int // widest line drawn so far, cleared on stop
}

// newSpinner returns a spinner that draws message to out once started.
func newSpinner(ctx context.Context, out io.Writer, message string) *Spinner {
	inner, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     out,
		parent:  ctx,
		ctx:     inner,
		cancel:  cancel,
		stopped: make(chan struct{}),
		message: message,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.started = true
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text shown next to the frame.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// Message returns the text currently shown.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop ends the animation and clears the line. Calling it again, or on a
// spinner that never started, is a no-op.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		if s.started {
			<-s.stopped
		}
	})
}

// Cancelled reports whether the spinner's parent context ended.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drawn = max(s.drawn, len(s.message)+2)
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drawn > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.drawn))
	}
}

// =============================================================================
// Stage Tracking
// =============================================================================

// stageSpinner renames the spinner as the pipeline moves between stages and
// forwards every event to next.
type stageSpinner struct {
	spin *Spinner
	next observability.PipelineHooks
}

func (h stageSpinner) OnBuildStart(ctx context.Context, source string) {
	h.spin.SetMessage("Building hierarchy from " + filepath.Base(source))
	h.next.OnBuildStart(ctx, source)
}

func (h stageSpinner) OnBuildComplete(ctx context.Context, source string, nodes int, d time.Duration, err error) {
	h.next.OnBuildComplete(ctx, source, nodes, d, err)
}

func (h stageSpinner) OnLayoutStart(ctx context.Context, tiling string, nodes int) {
	h.spin.SetMessage(fmt.Sprintf("Laying out %d nodes (%s)", nodes, tiling))
	h.next.OnLayoutStart(ctx, tiling, nodes)
}

func (h stageSpinner) OnLayoutComplete(ctx context.Context, tiling string, d time.Duration, err error) {
	h.next.OnLayoutComplete(ctx, tiling, d, err)
}

func (h stageSpinner) OnRenderStart(ctx context.Context, formats []string) {
	h.spin.SetMessage("Rendering " + strings.Join(formats, ", "))
	h.next.OnRenderStart(ctx, formats)
}

func (h stageSpinner) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.next.OnRenderComplete(ctx, formats, d, err)
}

// trackStages points pipeline events at spin until the returned function
// puts the previous hooks back.
func trackStages(spin *Spinner) (restore func()) {
	prev := observability.Pipeline()
	observability.SetPipelineHooks(stageSpinner{spin: spin, next: prev})
	return func() { observability.SetPipelineHooks(prev) }
}
