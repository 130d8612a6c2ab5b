package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var programsCmd = &cobra.Command{
	Use:   "programs",
	Short: "List programs you can apply to",
	RunE:  runPrograms,
}

func init() {
	rootCmd.AddCommand(programsCmd)
}

func runPrograms(cmd *cobra.Command, args []string) error {
	programs, err := listPrograms(cmd.Context())
	if err != nil {
		return err
	}

	if len(programs) == 0 {
		logInfo("No programs available.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLUG\tNAME\tDOMAIN\tTERMS")
	fmt.Fprintln(w, "----\t----\t------\t-----")

	for _, p := range programs {
		terms := "-"
		if p.TermsURL != "" {
			terms = p.TermsURL
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.Slug, p.Name, p.Domain, terms)
	}

	return w.Flush()
}
