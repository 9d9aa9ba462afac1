package commands

import (
	"errors"
	"fmt"

	"github.com/kurakampus/kurakampus-cli/internal/apierr"
	"github.com/kurakampus/kurakampus-cli/internal/app"
)

// newApp builds the dependency graph every command runs against.
func newApp() (*app.App, error) {
	a, err := app.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return a, nil
}

// describeErr unpacks API errors into something readable on a terminal;
// anything else passes through unchanged.
func describeErr(err error) error {
	var apiErr *apierr.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	if len(apiErr.Errors) == 0 {
		return fmt.Errorf("%s", apiErr.Message)
	}
	msg := apiErr.Message
	for _, fe := range apiErr.Errors {
		msg += fmt.Sprintf("\n  %s: %s", fe.Field, fe.Message)
	}
	return fmt.Errorf("%s", msg)
}

// requireLogin fails fast with a hint when there is no live session.
func requireLogin(a *app.App) error {
	if !a.Session.IsAuthenticated() {
		return fmt.Errorf("not logged in. Run 'kurakampus login' first")
	}
	return nil
}
