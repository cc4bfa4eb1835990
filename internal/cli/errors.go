package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// reportedError marks an error that has already been printed.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func writeErr(cmd *cobra.Command, err error) error {
	if err == nil {
		return nil
	}
	var r reportedError
	if errors.As(err, &r) {
		return err
	}
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return reportedError{err}
}

// ScriptError ties a failure to the script line that caused it.
type ScriptError struct {
	Line int
	Text string
	Err  error
}

func (e ScriptError) Error() string {
	return fmt.Sprintf("line %d: %s: %v", e.Line, e.Text, e.Err)
}

func (e ScriptError) Unwrap() error { return e.Err }

type unknownAliasError struct {
	alias string
}

func (e unknownAliasError) Error() string {
	return fmt.Sprintf("unknown alias: @%s", e.alias)
}
