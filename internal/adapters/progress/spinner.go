package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

// SpinnerProgressReporter implements progress reporting with a spinner
type SpinnerProgressReporter struct {
	spinner        *spinner.Spinner
	out            io.Writer
	currentStage   usecase.ExecutionStage
	stageStartTime time.Time
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return NewSpinnerProgressReporterTo(os.Stderr)
}

// NewSpinnerProgressReporterTo creates a spinner that writes to out
func NewSpinnerProgressReporterTo(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if event.Stage != r.currentStage {
		r.completeCurrentStage()
		r.currentStage = event.Stage
		r.stageStartTime = time.Now()
	}

	if event.Stage == usecase.StageCompleted {
		r.spinner.Stop()
		return
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.stageLabel(event)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
		return
	}

	if r.spinner.Active() {
		r.spinner.Stop()
	}
	if event.Message != "" {
		fmt.Fprintf(r.out, "%s %s\n", color.New(color.FgYellow).Sprint("●"), r.stageLabel(event))
	}
}

// Info prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	r.pauseSpinner(func() {
		color.New(color.FgCyan).Fprintln(r.out, message)
	})
}

// Error prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	r.pauseSpinner(func() {
		color.New(color.FgRed).Fprintln(r.out, message)
	})
}

// pauseSpinner stops the spinner while fn writes and restarts it afterwards
func (r *SpinnerProgressReporter) pauseSpinner(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	fn()

	if wasActive {
		r.spinner.Start()
	}
}

// completeCurrentStage prints the finished stage with its duration
func (r *SpinnerProgressReporter) completeCurrentStage() {
	if r.currentStage == "" || r.currentStage == usecase.StageCompleted {
		return
	}
	if r.spinner.Active() {
		r.spinner.Stop()
		duration := time.Since(r.stageStartTime).Round(time.Millisecond)
		fmt.Fprintf(r.out, "%s %s (%s)\n",
			color.New(color.FgGreen).Sprint("✓"), r.currentStage, duration)
	}
}

// stageLabel formats the event message, falling back to the stage name
func (r *SpinnerProgressReporter) stageLabel(event usecase.ProgressEvent) string {
	if event.Message == "" {
		return color.New(color.Bold).Sprint(string(event.Stage))
	}
	return event.Message
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
