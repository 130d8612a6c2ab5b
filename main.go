package main

import (
	"os"

	"github.com/refero-hq/partnerctl/cmd"
	"github.com/refero-hq/partnerctl/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
