package commands

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewRoutesCmd creates the routes command group
func NewRoutesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Inspect the client route table",
	}

	cmd.AddCommand(newRoutesListCmd())
	cmd.AddCommand(newRoutesCheckCmd())

	return cmd
}

func newRoutesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List all routes and their guards",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPATH\tAUTH\tROLES")
			for _, route := range a.Router.Table().Routes() {
				auth := "-"
				if route.RequiresAuth() {
					auth = "yes"
				}
				roles := strings.Join(route.AllowedRoles(), ",")
				if roles == "" {
					roles = "-"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", route.Name, route.Path, auth, roles)
			}
			w.Flush()
			return nil
		},
	}
}

func newRoutesCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <path>",
		Short: "Evaluate where a navigation to the given path would land",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			decision := a.Router.Navigate(args[0])
			if decision.Allowed {
				fmt.Printf("✓ Allowed: %s", args[0])
				if decision.Route != nil {
					fmt.Printf(" (%s)", decision.Route.Name)
				}
				fmt.Println()
				return nil
			}

			fmt.Printf("✗ Redirected to %s", decision.RedirectPath)
			if len(decision.RedirectQuery) > 0 {
				fmt.Printf("?%s", decision.RedirectQuery.Encode())
			}
			fmt.Println()
			return nil
		},
	}
}
