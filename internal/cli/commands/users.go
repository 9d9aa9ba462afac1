package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kurakampus/kurakampus-cli/internal/users"
)

// NewUsersCmd creates the users command group. Every subcommand requires the
// admin role server-side.
func NewUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts (admin only)",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersGetCmd())
	cmd.AddCommand(newUsersDeleteCmd())
	cmd.AddCommand(newUsersStatusCmd("activate", "Activate a user account"))
	cmd.AddCommand(newUsersStatusCmd("deactivate", "Deactivate a user account"))

	return cmd
}

func newUsersListCmd() *cobra.Command {
	var filters users.Filters

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List user accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			items, meta, err := a.Users.List(cmd.Context(), filters)
			if err != nil {
				return describeErr(err)
			}

			if len(items) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tEMAIL\tUSERNAME\tROLE\tSTATUS")
			for _, u := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Username, u.Role, u.Status)
			}
			w.Flush()

			fmt.Printf("\nPage %d/%d (%d total)\n", meta.Page, meta.TotalPages, meta.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Search, "search", "", "Search by email or username")
	cmd.Flags().StringVar(&filters.Role, "role", "", "Filter by role")
	cmd.Flags().StringVar(&filters.Status, "status", "", "Filter by status")
	cmd.Flags().IntVar(&filters.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&filters.Limit, "limit", 10, "Items per page")

	return cmd
}

func newUsersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			u, err := a.Users.Get(cmd.Context(), args[0])
			if err != nil {
				return describeErr(err)
			}

			fmt.Printf("User:     %s\n", u.FullName())
			fmt.Printf("Email:    %s\n", u.Email)
			fmt.Printf("Username: %s\n", u.Username)
			fmt.Printf("Role:     %s\n", u.Role)
			fmt.Printf("Status:   %s\n", u.Status)
			if u.LastLoginAt != "" {
				fmt.Printf("Last login: %s\n", u.LastLoginAt)
			}
			return nil
		},
	}
}

func newUsersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a user account",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}
			if err := a.Users.Delete(cmd.Context(), args[0]); err != nil {
				return describeErr(err)
			}
			fmt.Println("✓ User deleted")
			return nil
		},
	}
}

func newUsersStatusCmd(action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			if action == "activate" {
				err = a.Users.Activate(cmd.Context(), args[0])
			} else {
				err = a.Users.Deactivate(cmd.Context(), args[0])
			}
			if err != nil {
				return describeErr(err)
			}
			fmt.Printf("✓ User %sd\n", action)
			return nil
		},
	}
}
