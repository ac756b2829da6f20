// Command candidates inspects candidate spreadsheets and imports them into the
// candidate store from the command line.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/candidates/internal/core"
)

func main() {
	// A missing .env is fine; flags and the environment still apply.
	_ = godotenv.Load()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, errorText(err))
		}
		os.Exit(1)
	}
}

// userFacing wraps err in a UserError when it maps to a specific message.
func userFacing(err error) error {
	if !core.IsUserFacing(err) {
		return err
	}
	return core.NewUserError(err)
}

// errorText prints the user message of a UserError and the plain error
// otherwise.
func errorText(err error) string {
	var userErr *core.UserError
	if errors.As(err, &userErr) {
		return core.FormatUserError(userErr)
	}
	return err.Error()
}
