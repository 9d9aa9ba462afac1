package commands

import (
	"context"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/kurakampus/kurakampus-cli/internal/session"
)

// NewLoginCmd creates the login command
func NewLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate with a KuraKampus server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLogin(cmd.Context(), email, password)
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Email address (or set KURAKAMPUS_EMAIL)")
	cmd.Flags().StringVar(&password, "password", "", "Password (or set KURAKAMPUS_PASSWORD, will prompt if not provided)")

	return cmd
}

func runLogin(ctx context.Context, email, password string) error {
	// Environment fallbacks are useful for CI
	if email == "" {
		email = os.Getenv("KURAKAMPUS_EMAIL")
	}
	if password == "" {
		password = os.Getenv("KURAKAMPUS_PASSWORD")
	}

	if email == "" {
		return fmt.Errorf("email is required (use --email flag or KURAKAMPUS_EMAIL env var)")
	}

	if password == "" {
		if term.IsTerminal(int(syscall.Stdin)) {
			fmt.Print("Password: ")
			bytePassword, err := term.ReadPassword(int(syscall.Stdin))
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
			password = string(bytePassword)
			fmt.Println()
		} else {
			return fmt.Errorf("password is required in non-interactive mode (use --password flag or KURAKAMPUS_PASSWORD env var)")
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}

	fmt.Printf("Logging in to %s...\n", a.Config.API.BaseURL)

	result, err := a.Session.Login(ctx, session.LoginCredentials{
		Email:    email,
		Password: password,
	})
	if err != nil {
		return describeErr(err)
	}

	fmt.Println("✓ Login successful!")
	fmt.Printf("  User: %s (%s)\n", result.User.FullName(), result.User.Email)
	if result.User.Role != "" && result.User.Role != "user" {
		fmt.Printf("  Role: %s\n", result.User.Role)
	}

	return nil
}
