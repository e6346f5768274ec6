package cli

import (
	"encoding/json"
	"io"

	gderrors "github.com/mizushima/gdforge/internal/errors"
)

// Exit codes by failure class, so scripts can branch without parsing
// messages.
const (
	exitIO        = 1
	exitNotFound  = 2
	exitProtected = 3
	exitBadData   = 4
	exitNoProject = 5
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch gderrors.CodeOf(err) {
	case gderrors.CodeNotFound:
		return exitNotFound
	case gderrors.CodeProtected:
		return exitProtected
	case gderrors.CodeValidation, gderrors.CodeCorrupt:
		return exitBadData
	case gderrors.CodeNoProject:
		return exitNoProject
	default:
		return exitIO
	}
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
