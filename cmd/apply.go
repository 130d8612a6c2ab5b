package cmd

import (
	"github.com/spf13/cobra"

	"github.com/refero-hq/partnerctl/internal/api"
	"github.com/refero-hq/partnerctl/internal/app"
	"github.com/refero-hq/partnerctl/internal/browser"
	"github.com/refero-hq/partnerctl/internal/cache"
	"github.com/refero-hq/partnerctl/internal/errors"
	"github.com/refero-hq/partnerctl/internal/logging"
	"github.com/refero-hq/partnerctl/internal/tui"
)

var applyCmd = &cobra.Command{
	Use:   "apply [program]",
	Short: "Apply to a partner program",
	Long: `Opens the application sheet for a program.

With a program slug, the sheet opens directly. Without one, an
interactive picker lists the programs you can apply to.

Inside the sheet:
  Tab     - Move between fields
  Space   - Toggle the terms checkbox
  Ctrl+O  - Open the program terms in your browser
  Ctrl+S  - Submit the application
  Esc     - Close (your text is kept as a draft)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runApply,
}

func init() {
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	a := app.Default

	partner, err := a.Profiles.Get(ctx)
	if err != nil {
		return errors.ProfileUnavailable(err)
	}

	var program *api.Program
	if len(args) == 1 {
		program, err = loadProgram(ctx, args[0])
		if err != nil {
			return err
		}
	} else {
		programs, err := listPrograms(ctx)
		if err != nil {
			return err
		}
		if len(programs) == 0 {
			logInfo("No programs available to apply to.")
			return nil
		}

		result, err := tui.RunPicker(programs)
		if err != nil {
			return errors.APIError("picker", err)
		}
		if result.Action != tui.ActionApply || result.Program == nil {
			return nil
		}
		program = result.Program
	}

	logging.Debug("opening application sheet", "program", program.Slug)

	// A successful submission invalidates the program's cache entry;
	// pick that up afterwards so this process rereads platform state.
	invalidated, cancelInvalidated := a.Programs.Subscribe(cache.ProgramKey(program.Slug))
	defer cancelInvalidated()

	profileUpdates, cancelProfile := a.Profiles.Subscribe()
	defer cancelProfile()

	sheet, setOpen := tui.NewSheet(tui.SheetOptions{
		Program:    program,
		Partner:    partner,
		Submit:     a.Platform.SubmitApplication,
		Invalidate: a.Programs.Invalidate,
		OpenTerms: func(url string) error {
			if err := browser.Open(a.Config.BrowserCommand, url); err != nil {
				return errors.ConfigError("failed to open browser", err)
			}
			return nil
		},
		DraftsDir: a.Paths.DraftsDir,
		Clock:     a.Clock,
		Ctx:       ctx,
	})

	if err := tui.RunSheet(sheet, setOpen, profileUpdates); err != nil {
		return errors.Wrap(errors.ExitGeneralError, "application sheet failed", err)
	}

	refreshProgram(ctx, invalidated, program.Slug)

	if sheet.Succeeded() {
		logSuccess("Application to %s submitted for review.", program.Name)
		return nil
	}
	if err := sheet.SubmitError(); err != nil {
		return errors.SubmitFailed(err)
	}
	logInfo("Application to %s not submitted.", program.Name)
	return nil
}
