package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/refero-hq/partnerctl/internal/app"
	"github.com/refero-hq/partnerctl/internal/errors"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your partner profile",
	RunE:  runProfile,
}

func init() {
	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, args []string) error {
	partner, err := app.Default.Profiles.Get(cmd.Context())
	if err != nil {
		return errors.ProfileUnavailable(err)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Email:\t%s\n", partner.Email)
	fmt.Fprintf(w, "Name:\t%s\n", partner.Name)
	if partner.Website != "" {
		fmt.Fprintf(w, "Website:\t%s\n", partner.Website)
	}
	return w.Flush()
}
