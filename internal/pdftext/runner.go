package pdftext

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	"fjacquet/cert-archive/internal/logging"
	"fjacquet/cert-archive/internal/textutils"
)

// Runner lets us stub external commands in tests.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stdout, stderr []byte, err error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct {
	Logger logging.Logger
}

func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	start := time.Now()

	cmd := exec.CommandContext(ctx, name, args...)
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb

	err := cmd.Run()
	fields := []logging.Field{
		logging.F("cmd", name),
		logging.F("args", strings.Join(args, " ")),
		logging.F("duration_ms", time.Since(start).Milliseconds()),
	}
	if err != nil {
		logger.WithError(err).Debug("Command failed",
			append(fields, logging.F("stderr", textutils.Truncate(errb.String(), 512)))...)
	} else {
		logger.Debug("Command finished", append(fields, logging.F("stdout_bytes", out.Len()))...)
	}
	return out.Bytes(), errb.Bytes(), err
}
