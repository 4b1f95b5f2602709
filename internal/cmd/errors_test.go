package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pandalog/pandalog/internal/api"
	"github.com/pandalog/pandalog/internal/cmdutil"
	"github.com/pandalog/pandalog/internal/ui"
)

func TestExitCodeOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ExitCode
	}{
		{name: "nil", err: nil, want: ExitOK},
		{name: "generic", err: errors.New("boom"), want: ExitError},
		{name: "unauthorized", err: &api.APIError{StatusCode: 401}, want: ExitAuth},
		{name: "forbidden wrapped", err: fmt.Errorf("failed: %w", &api.APIError{StatusCode: 403}), want: ExitAuth},
		{name: "http not found", err: &api.APIError{StatusCode: 404}, want: ExitNotFound},
		{name: "server error", err: &api.APIError{StatusCode: 500}, want: ExitError},
		{name: "team not found", err: &api.NotFoundError{Kind: api.EntityTeam, Name: "ops"}, want: ExitNotFound},
		{name: "config", err: cmdutil.NewConfigError("no host"), want: ExitConfig},
		{name: "usage", err: cmdutil.NewUsageError("bad"), want: ExitUsage},
		{name: "not interactive", err: fmt.Errorf("read: %w", ui.ErrNotInteractive), want: ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCodeOf(tt.err); got != tt.want {
				t.Errorf("ExitCodeOf(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestHandleErrorPrintsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	orig := ui.Stderr
	ui.Stderr = &stderr
	defer func() { ui.Stderr = orig }()
	ui.SetColorEnabled(false)

	code := HandleError(&api.APIError{StatusCode: 401, Message: "session expired"})
	if code != ExitAuth {
		t.Errorf("HandleError() = %d, want %d", code, ExitAuth)
	}
	if !strings.Contains(stderr.String(), "pandalog-auth get-sts-token") {
		t.Errorf("stderr = %q", stderr.String())
	}

	stderr.Reset()
	code = HandleError(&api.NotFoundError{Kind: api.EntityStream, Name: "ledger"})
	if code != ExitNotFound {
		t.Errorf("HandleError() = %d, want %d", code, ExitNotFound)
	}
	if !strings.Contains(stderr.String(), "stream not found: ledger") {
		t.Errorf("stderr = %q", stderr.String())
	}
}
