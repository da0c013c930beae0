package progress

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/oracle-deployer/internal/domain/config"
	"github.com/trebuchet-org/oracle-deployer/internal/usecase"
)

func TestSpinnerProgressReporter(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()

	var out bytes.Buffer
	r := NewSpinnerProgressReporterTo(&out)

	r.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageResolving, Message: "Resolving Oracle artifact"})
	r.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageConnecting, Message: "Connected to bera_bartio"})
	r.Info("note")
	r.OnProgress(ctx, usecase.ProgressEvent{Stage: usecase.StageCompleted})

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Equal(t, []string{
		"● Resolving Oracle artifact",
		"● Connected to bera_bartio",
		"note",
	}, lines)
}

func TestNewProgressSink(t *testing.T) {
	assert.IsType(t, &NopSink{}, NewProgressSink(&config.RuntimeConfig{NonInteractive: true}))
	assert.IsType(t, &NopSink{}, NewProgressSink(&config.RuntimeConfig{Debug: true}))
	assert.IsType(t, &SpinnerProgressReporter{}, NewProgressSink(&config.RuntimeConfig{}))
}
