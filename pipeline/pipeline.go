// Package pipeline runs an ordered sequence of external commands, capturing
// each step's output and halting at the first failure. It never interprets
// tool output; exit status is the only verdict it renders.
package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/kitfox-games/gameday/ui"
)

// Step is one external command: what to run, where, and with which extra
// environment on top of the inherited one.
type Step struct {
	Name    string
	Dir     string
	Command string
	Args    []string
	Env     []string // KEY=VALUE pairs appended to the inherited environment
}

// Result pairs a completed step with its combined stdout and stderr.
type Result struct {
	Step   Step
	Output string
}

// StepError names the failing step and carries its captured output verbatim.
// Steps already completed are not rolled back; the destroy script is the
// recovery path.
type StepError struct {
	Name   string
	Output string
	Err    error
}

func (err *StepError) Error() string {
	return fmt.Sprintf("step %s failed: %v", err.Name, err.Err)
}

func (err *StepError) Unwrap() error { return err.Err }

// Run executes steps in order, streaming combined output to w (which may be
// nil) as it arrives and capturing it per step. The first non-zero exit
// halts the sequence; the results of completed steps are returned alongside
// the StepError so callers can surface the full transcript.
func Run(ctx context.Context, w io.Writer, steps []Step) ([]Result, error) {
	if w == nil {
		w = io.Discard
	}
	results := make([]Result, 0, len(steps))
	for _, step := range steps {
		ui.Printf("running %s: %s", step.Name, step.Command)
		buf := &bytes.Buffer{}
		cmd := exec.CommandContext(ctx, step.Command, step.Args...)
		cmd.Dir = step.Dir
		cmd.Env = append(os.Environ(), step.Env...)
		cmd.Stdin = os.Stdin

		// Stdout and Stderr must be the same writer value so that os/exec
		// serializes the two streams instead of copying them concurrently
		// into the shared buffer.
		mw := io.MultiWriter(w, buf)
		cmd.Stdout = mw
		cmd.Stderr = mw
		err := cmd.Run()
		results = append(results, Result{step, buf.String()})
		if err != nil {
			return results, &StepError{step.Name, buf.String(), err}
		}
	}
	return results, nil
}
