package utils

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// errOut is where diagnostics go. Tests swap it out.
var errOut io.Writer = os.Stderr

// exit is os.Exit, replaceable in tests.
var exit = os.Exit

// ShowError prints a formatted error box without terminating the program.
// Use it for failures the caller recovers from or returns upward.
func ShowError(context string, err error) {
	fmt.Fprintf(errOut, "\n---------------------------------------------------------\n")
	fmt.Fprintf(errOut, "🚨 TONEMATCH ERROR: %s\n", context)
	if err != nil {
		fmt.Fprintf(errOut, "DETAILS: %v\n", err)
	}
	fmt.Fprintf(errOut, "---------------------------------------------------------\n")
}

// reportedError marks an error whose box has already been printed.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

// Report prints the error box for err and returns it marked as shown, so the
// top-level handler does not print it a second time. errors.Is still sees
// through the mark.
func Report(context string, err error) error {
	ShowError(context, err)
	if err == nil {
		return nil
	}
	return reportedError{err: err}
}

// IsReported tells whether err went through Report.
func IsReported(err error) bool {
	var r reportedError
	return errors.As(err, &r)
}

// Die is the unified exit strategy for unrecoverable states.
// It prints the same error box as ShowError and exits with status 1.
func Die(context string, err error) {
	ShowError(context, err)
	exit(1)
}
