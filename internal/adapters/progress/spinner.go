package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

// SpinnerProgressReporter shows the running phase behind a spinner and
// prints a line for every phase once it finishes
type SpinnerProgressReporter struct {
	spinner *spinner.Spinner
	out     io.Writer
	stages  []stageInfo
}

type stageInfo struct {
	Stage     string
	Current   int
	Total     int
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

// NewSpinnerProgressReporter creates a new spinner-based progress reporter
func NewSpinnerProgressReporter() *SpinnerProgressReporter {
	return newSpinnerProgressReporter(os.Stderr)
}

func newSpinnerProgressReporter(out io.Writer) *SpinnerProgressReporter {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgressReporter{
		spinner: s,
		out:     out,
	}
}

// OnProgress handles progress events
func (r *SpinnerProgressReporter) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if current := r.current(); current != nil && current.Stage != event.Stage {
		r.finish(current, "completed")
	}

	if current := r.current(); current == nil || current.Stage != event.Stage {
		r.stages = append(r.stages, stageInfo{
			Stage:     event.Stage,
			Current:   event.Current,
			Total:     event.Total,
			StartTime: time.Now(),
			Status:    "running",
		})
	}

	if event.Spinner {
		r.spinner.Suffix = " " + r.label(r.current(), event.Message)
		if !r.spinner.Active() {
			r.spinner.Start()
		}
	} else if r.spinner.Active() {
		r.spinner.Stop()
	}
}

// Info completes the running phase and prints an info message
func (r *SpinnerProgressReporter) Info(message string) {
	if current := r.current(); current != nil && current.Status == "running" {
		r.finish(current, "completed")
	}
	r.print(color.New(color.FgCyan), message)
}

// Error marks the running phase failed and prints an error message
func (r *SpinnerProgressReporter) Error(message string) {
	if current := r.current(); current != nil && current.Status == "running" {
		r.finish(current, "failed")
	}
	r.print(color.New(color.FgRed), message)
}

func (r *SpinnerProgressReporter) current() *stageInfo {
	if len(r.stages) == 0 {
		return nil
	}
	return &r.stages[len(r.stages)-1]
}

// finish stops the spinner and leaves a summary line for the stage
func (r *SpinnerProgressReporter) finish(stage *stageInfo, status string) {
	stage.EndTime = time.Now()
	stage.Status = status
	if r.spinner.Active() {
		r.spinner.Stop()
	}

	var icon string
	var stageColor *color.Color
	switch status {
	case "completed":
		icon = "✓"
		stageColor = color.New(color.FgGreen)
	case "failed":
		icon = "✗"
		stageColor = color.New(color.FgRed)
	default:
		icon = "○"
		stageColor = color.New(color.FgWhite)
	}

	duration := stage.EndTime.Sub(stage.StartTime).Round(time.Millisecond)
	fmt.Fprintf(r.out, "%s %s (%s)\n", stageColor.Sprint(icon), r.label(stage, ""), duration)
}

func (r *SpinnerProgressReporter) label(stage *stageInfo, message string) string {
	var b strings.Builder
	if stage.Total > 0 {
		fmt.Fprintf(&b, "[%d/%d] ", stage.Current, stage.Total)
	}
	b.WriteString(stage.Stage)
	if message != "" {
		b.WriteString(color.New(color.Faint).Sprint(" " + message))
	}
	return b.String()
}

func (r *SpinnerProgressReporter) print(c *color.Color, message string) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}

	c.Fprintln(r.out, message)

	if wasActive {
		r.spinner.Start()
	}
}

// Ensure SpinnerProgressReporter implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgressReporter)(nil)
