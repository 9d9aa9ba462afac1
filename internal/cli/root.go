package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kurakampus/kurakampus-cli/internal/cli/commands"
)

var version = "dev" // Will be set during build

var rootCmd = &cobra.Command{
	Use:   "kurakampus",
	Short: "KuraKampus - Campus organization directory client",
	Long: `KuraKampus CLI - Browse and manage the campus organization directory.

The CLI talks to a KuraKampus API server, keeps your session tokens in
local storage (or the OS keyring), and transparently refreshes expired
access tokens.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("kurakampus version %s\n", version)
		},
	})

	rootCmd.AddCommand(commands.NewLoginCmd())
	rootCmd.AddCommand(commands.NewRegisterCmd())
	rootCmd.AddCommand(commands.NewLogoutCmd())
	rootCmd.AddCommand(commands.NewWhoamiCmd())
	rootCmd.AddCommand(commands.NewRefreshCmd())
	rootCmd.AddCommand(commands.NewOrgsCmd())
	rootCmd.AddCommand(commands.NewUsersCmd())
	rootCmd.AddCommand(commands.NewRoutesCmd())
	rootCmd.AddCommand(commands.NewMockCmd())
}

// Execute runs the root command
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
