package commands

import (
	"context"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kurakampus/kurakampus-cli/internal/session"
)

// NewRegisterCmd creates the register command
func NewRegisterCmd() *cobra.Command {
	var data session.RegisterData

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRegister(cmd.Context(), data)
		},
	}

	cmd.Flags().StringVar(&data.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&data.Username, "username", "", "Username")
	cmd.Flags().StringVar(&data.FirstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&data.LastName, "last-name", "", "Last name")
	cmd.Flags().StringVar(&data.Password, "password", "", "Password (will prompt if not provided)")

	return cmd
}

func runRegister(ctx context.Context, data session.RegisterData) error {
	if data.Password == "" {
		if !term.IsTerminal(int(syscall.Stdin)) {
			return fmt.Errorf("password is required in non-interactive mode (use --password)")
		}
		fmt.Print("Password: ")
		pw, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		fmt.Print("Confirm password: ")
		confirm, err := term.ReadPassword(int(syscall.Stdin))
		if err != nil {
			return fmt.Errorf("failed to read password: %w", err)
		}
		fmt.Println()
		data.Password = string(pw)
		data.PasswordConfirmation = string(confirm)
	} else {
		data.PasswordConfirmation = data.Password
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	result, err := a.Session.Register(ctx, data)
	if err != nil {
		return describeErr(err)
	}

	fmt.Println("✓ Account created!")
	fmt.Printf("  User: %s (%s)\n", result.User.FullName(), result.User.Email)

	return nil
}
