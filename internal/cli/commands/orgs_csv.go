package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kurakampus/kurakampus-cli/internal/orgs"
)

func newOrgsImportCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import <file.csv>",
		Short: "Bulk-import organizations from a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()

			if dryRun {
				rows, rowErrs, err := orgs.ReadCSV(f)
				if err != nil {
					return err
				}
				fmt.Printf("%d rows parsed, %d rejected\n", len(rows), len(rowErrs))
				for _, re := range rowErrs {
					fmt.Printf("  row %d, %s: %s\n", re.Row, re.Field, re.Message)
				}
				return nil
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			result, err := a.Orgs.ImportCSV(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return describeErr(err)
			}

			fmt.Printf("✓ Imported %d organizations", result.SuccessCount)
			if result.FailedCount > 0 {
				fmt.Printf(" (%d rows failed)", result.FailedCount)
			}
			fmt.Println()
			for _, re := range result.Errors {
				fmt.Printf("  row %d, %s: %s\n", re.Row, re.Field, re.Message)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file locally without uploading")

	return cmd
}

func newOrgsExportCmd() *cobra.Command {
	var output string
	var filters orgs.Filters

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export organizations to CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			data, err := a.Orgs.ExportCSV(cmd.Context(), filters)
			if err != nil {
				return describeErr(err)
			}

			if output == "-" {
				os.Stdout.Write(data)
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("✓ Exported to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "organizations.csv", "Output file ('-' for stdout)")
	cmd.Flags().StringVar(&filters.Search, "search", "", "Free-text search")
	cmd.Flags().StringSliceVar(&filters.JenisOrganisasi, "type", nil, "Filter by organization type")
	cmd.Flags().StringSliceVar(&filters.BidangOrganisasi, "field", nil, "Filter by organization field")

	return cmd
}

func newOrgsTemplateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Download the CSV import template",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			data, err := a.Orgs.CSVTemplate(cmd.Context())
			if err != nil {
				return describeErr(err)
			}

			if output == "-" {
				os.Stdout.Write(data)
				return nil
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("failed to write %s: %w", output, err)
			}
			fmt.Printf("✓ Template written to %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "template.csv", "Output file ('-' for stdout)")

	return cmd
}
