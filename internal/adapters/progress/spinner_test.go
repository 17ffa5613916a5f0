package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/l2deploy/internal/usecase"
)

func TestSpinnerProgressReporter(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	var buf bytes.Buffer
	r := newSpinnerProgressReporter(&buf)

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "controllers", Current: 1, Total: 6})
	r.OnProgress(ctx, usecase.ProgressEvent{Stage: "proxies", Current: 2, Total: 6})
	r.Error("proxies failed")

	out := buf.String()
	assert.Contains(t, out, "✓ [1/6] controllers")
	assert.Contains(t, out, "✗ [2/6] proxies")
	assert.Contains(t, out, "proxies failed")

	assert.Len(t, r.stages, 2)
	assert.Equal(t, "completed", r.stages[0].Status)
	assert.Equal(t, "failed", r.stages[1].Status)
}

func TestSpinnerProgressReporter_InfoCompletesStage(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := newSpinnerProgressReporter(&buf)

	r.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "extensions", Current: 6, Total: 6})
	r.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "extensions", Current: 6, Total: 6})
	r.Info("Done: 0 mutating steps")

	assert.Len(t, r.stages, 1)
	assert.Contains(t, buf.String(), "✓ [6/6] extensions")
	assert.Contains(t, buf.String(), "Done: 0 mutating steps")
}
