package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/matzehuels/treemap/pkg/errors"
)

// Exit statuses returned by the treemap binary.
const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitInvalid     = 2 // malformed dataset, config or flags
	ExitNotFound    = 3 // missing file or node reference
	ExitUnsupported = 4
	ExitInterrupted = 130
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidSize:
		return ExitInvalid
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return ExitNotFound
	case errors.ErrCodeUnsupported:
		return ExitUnsupported
	}
	return ExitFailure
}

// ReportError writes err to w behind the error icon. Interruptions print
// nothing.
func ReportError(w io.Writer, err error) {
	if err == nil || stderrors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintf(w, "%s %v\n", styleIconError.Render(iconError), err)
}
