package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/colinmollenhour/clickup-mcp-server/internal/exitcode"
	"github.com/colinmollenhour/clickup-mcp-server/internal/ops"
	"github.com/colinmollenhour/clickup-mcp-server/internal/service"
)

// fail prints an error and maps it to an exit code. Validation, not-found and
// ambiguity errors are user errors; unauthorized is an auth error; everything
// else is a backend error.
func fail(errOut io.Writer, err error) int {
	var verr *ops.ValidationError
	var nferr *ops.NotFoundError
	var aerr *ops.AmbiguousError
	switch {
	case errors.As(err, &verr), errors.As(err, &nferr), errors.As(err, &aerr):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.UserError
	case errors.Is(err, service.ErrUnauthorized):
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	default:
		fmt.Fprintf(errOut, "error: backend error: %v\n", err)
		return exitcode.BackendError
	}
}
