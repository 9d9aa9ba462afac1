package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kurakampus/kurakampus-cli/internal/config"
	"github.com/kurakampus/kurakampus-cli/internal/logger"
	"github.com/kurakampus/kurakampus-cli/internal/mockapi"
)

// NewMockCmd creates the mock command group
func NewMockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mock",
		Short: "Run the built-in mock backend",
	}

	cmd.AddCommand(newMockServeCmd())

	return cmd
}

func newMockServeCmd() *cobra.Command {
	var addr, dbPath, secret string
	var seed bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the mock API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			log := logger.New(cfg.Logging)

			if secret == "" {
				secret = os.Getenv("MOCKAPI_JWT_SECRET")
			}

			srv, err := mockapi.New(mockapi.Options{
				DatabasePath: dbPath,
				JWTSecret:    secret,
				Seed:         seed,
			}, log)
			if err != nil {
				return fmt.Errorf("failed to create mock server: %w", err)
			}

			fmt.Printf("Mock API listening on %s\n", addr)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":3000", "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", "mockapi.db", "SQLite database path")
	cmd.Flags().StringVar(&secret, "jwt-secret", "", "JWT signing secret (or set MOCKAPI_JWT_SECRET)")
	cmd.Flags().BoolVar(&seed, "seed", true, "Seed demo data on first start")

	return cmd
}
