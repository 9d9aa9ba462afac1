package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewLogoutCmd creates the logout command
func NewLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session and clear stored tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			// Best-effort server side; local state is cleared regardless
			a.Session.Logout(cmd.Context())
			fmt.Println("✓ Logged out")
			return nil
		},
	}
}

// NewWhoamiCmd creates the whoami command
func NewWhoamiCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			user := a.Session.CurrentUser()
			if remote || user == nil {
				user, err = a.Session.FetchUser(cmd.Context())
				if err != nil {
					return describeErr(err)
				}
			}

			fmt.Printf("User:   %s\n", user.FullName())
			fmt.Printf("Email:  %s\n", user.Email)
			fmt.Printf("Role:   %s\n", user.Role)
			fmt.Printf("Status: %s\n", user.Status)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Fetch the profile from the server instead of local state")

	return cmd
}

// NewRefreshCmd creates the refresh command
func NewRefreshCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a new access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := a.Session.Refresh(cmd.Context()); err != nil {
				return describeErr(err)
			}
			fmt.Println("✓ Session refreshed")
			return nil
		},
	}
}
