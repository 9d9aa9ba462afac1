package commands

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kurakampus/kurakampus-cli/internal/orgs"
)

// NewOrgsCmd creates the orgs command group
func NewOrgsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "orgs",
		Aliases: []string{"org", "organizations"},
		Short:   "Browse and manage campus organizations",
	}

	cmd.AddCommand(newOrgsListCmd())
	cmd.AddCommand(newOrgsGetCmd())
	cmd.AddCommand(newOrgsCreateCmd())
	cmd.AddCommand(newOrgsUpdateCmd())
	cmd.AddCommand(newOrgsDeleteCmd())
	cmd.AddCommand(newOrgsStatsCmd())
	cmd.AddCommand(newOrgsImportCmd())
	cmd.AddCommand(newOrgsExportCmd())
	cmd.AddCommand(newOrgsTemplateCmd())

	return cmd
}

func newOrgsListCmd() *cobra.Command {
	var filters orgs.Filters

	cmd := &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			items, meta, err := a.Orgs.List(cmd.Context(), filters)
			if err != nil {
				return describeErr(err)
			}

			if len(items) == 0 {
				fmt.Println("No organizations found.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tINSTITUTION\tTYPE\tFIELD\tFOUNDED")
			for _, org := range items {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
					org.ID,
					org.NamaOrganisasi,
					org.NamaInstansi,
					org.JenisOrganisasi,
					org.BidangOrganisasi,
					org.TahunBerdiri,
				)
			}
			w.Flush()

			fmt.Printf("\nPage %d/%d (%d total)\n", meta.Page, meta.TotalPages, meta.Total)
			return nil
		},
	}

	cmd.Flags().StringVar(&filters.Search, "search", "", "Free-text search")
	cmd.Flags().StringVar(&filters.NamaInstansi, "institution", "", "Filter by institution name")
	cmd.Flags().StringVar(&filters.DaerahInstansi, "region", "", "Filter by region")
	cmd.Flags().StringSliceVar(&filters.JenisOrganisasi, "type", nil, "Filter by organization type")
	cmd.Flags().StringSliceVar(&filters.BidangOrganisasi, "field", nil, "Filter by organization field")
	cmd.Flags().IntVar(&filters.TahunMin, "founded-after", 0, "Minimum founding year")
	cmd.Flags().IntVar(&filters.TahunMax, "founded-before", 0, "Maximum founding year")
	cmd.Flags().StringVar(&filters.SortBy, "sort", "", "Sort column")
	cmd.Flags().StringVar(&filters.SortOrder, "order", "", "Sort order (asc|desc)")
	cmd.Flags().IntVar(&filters.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&filters.Limit, "limit", 10, "Items per page")

	return cmd
}

func newOrgsGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			org, err := a.Orgs.Get(cmd.Context(), args[0])
			if err != nil {
				return describeErr(err)
			}

			fmt.Printf("Name:        %s\n", org.NamaOrganisasi)
			fmt.Printf("Institution: %s (%s)\n", org.NamaInstansi, org.DaerahInstansi)
			fmt.Printf("Type:        %s\n", org.JenisOrganisasi)
			fmt.Printf("Field:       %s\n", org.BidangOrganisasi)
			fmt.Printf("Founded:     %d\n", org.TahunBerdiri)
			fmt.Printf("Contact:     %s\n", org.Kontak)
			if org.PenjelasanSingkat != "" {
				fmt.Printf("About:       %s\n", org.PenjelasanSingkat)
			}
			if len(org.Proker) > 0 {
				fmt.Printf("Programs:    %s\n", strings.Join(org.Proker, ", "))
			}
			return nil
		},
	}
}

func newOrgsCreateCmd() *cobra.Command {
	var input orgs.CreateInput

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			org, err := a.Orgs.Create(cmd.Context(), input)
			if err != nil {
				return describeErr(err)
			}

			fmt.Printf("✓ Organization created: %s (%s)\n", org.NamaOrganisasi, org.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&input.NamaOrganisasi, "name", "", "Organization name (required)")
	cmd.Flags().StringVar(&input.NamaInstansi, "institution", "", "Institution name (required)")
	cmd.Flags().StringVar(&input.DaerahInstansi, "region", "", "Institution region (required)")
	cmd.Flags().StringVar(&input.Kontak, "contact", "", "Contact address (required)")
	cmd.Flags().StringVar(&input.JenisOrganisasi, "type", "", "Organization type (required)")
	cmd.Flags().StringVar(&input.BidangOrganisasi, "field", "", "Organization field (required)")
	cmd.Flags().IntVar(&input.TahunBerdiri, "founded", 0, "Founding year (required)")
	cmd.Flags().StringVar(&input.PenjelasanSingkat, "about", "", "Short description")
	cmd.Flags().StringSliceVar(&input.Proker, "program", nil, "Program of work (repeatable)")

	return cmd
}

func newOrgsUpdateCmd() *cobra.Command {
	var (
		name, institution, region, contact string
		orgType, field, about              string
		founded                            int
		programs                           []string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an organization (only the flags you pass change)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			var input orgs.UpdateInput
			if cmd.Flags().Changed("name") {
				input.NamaOrganisasi = &name
			}
			if cmd.Flags().Changed("institution") {
				input.NamaInstansi = &institution
			}
			if cmd.Flags().Changed("region") {
				input.DaerahInstansi = &region
			}
			if cmd.Flags().Changed("contact") {
				input.Kontak = &contact
			}
			if cmd.Flags().Changed("type") {
				input.JenisOrganisasi = &orgType
			}
			if cmd.Flags().Changed("field") {
				input.BidangOrganisasi = &field
			}
			if cmd.Flags().Changed("about") {
				input.PenjelasanSingkat = &about
			}
			if cmd.Flags().Changed("founded") {
				input.TahunBerdiri = &founded
			}
			if cmd.Flags().Changed("program") {
				input.Proker = &programs
			}

			org, err := a.Orgs.Update(cmd.Context(), args[0], input)
			if err != nil {
				return describeErr(err)
			}

			fmt.Printf("✓ Organization updated: %s\n", org.NamaOrganisasi)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Organization name")
	cmd.Flags().StringVar(&institution, "institution", "", "Institution name")
	cmd.Flags().StringVar(&region, "region", "", "Institution region")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact address")
	cmd.Flags().StringVar(&orgType, "type", "", "Organization type")
	cmd.Flags().StringVar(&field, "field", "", "Organization field")
	cmd.Flags().IntVar(&founded, "founded", 0, "Founding year")
	cmd.Flags().StringVar(&about, "about", "", "Short description")
	cmd.Flags().StringSliceVar(&programs, "program", nil, "Program of work (replaces the list)")

	return cmd
}

func newOrgsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>...",
		Aliases: []string{"delete"},
		Short:   "Delete one or more organizations",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			if len(args) == 1 {
				if err := a.Orgs.Delete(cmd.Context(), args[0]); err != nil {
					return describeErr(err)
				}
				fmt.Println("✓ Organization deleted")
				return nil
			}

			result, err := a.Orgs.BulkDelete(cmd.Context(), args)
			if err != nil {
				return describeErr(err)
			}
			fmt.Printf("✓ Deleted %d organizations\n", result.DeletedCount)
			return nil
		},
	}
}

func newOrgsStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show directory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			if err := requireLogin(a); err != nil {
				return err
			}

			stats, err := a.Orgs.Stats(cmd.Context())
			if err != nil {
				return describeErr(err)
			}

			fmt.Printf("Total organizations: %d\n", stats.TotalOrganizations)
			printBreakdown("By type", stats.ByJenis)
			printBreakdown("By field", stats.ByBidang)
			printBreakdown("By institution", stats.ByInstansi)
			return nil
		},
	}
}

func printBreakdown(label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\n%s:\n", label)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, k := range keys {
		fmt.Fprintf(w, "  %s\t%d\n", k, counts[k])
	}
	w.Flush()
}
