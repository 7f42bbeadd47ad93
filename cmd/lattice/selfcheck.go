package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lattice/internal/driver"
	"lattice/internal/fixture"
)

var selfcheckCmd = &cobra.Command{
	Use:   "selfcheck",
	Short: "Verify that repeated renders are byte-identical",
	Long: `Selfcheck renders every built-in module twice with fresh printer
state and fails when the dumps differ. A difference means id assignment
stopped being deterministic.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jobs, _ := cmd.Flags().GetInt("jobs")

		err := driver.Selfcheck(cmd.Context(), fixture.All(), driver.Options{Jobs: jobs})
		if err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %v\n", color.RedString("FAIL"), err)
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d modules render deterministically\n",
			color.GreenString("OK"), len(fixture.All()))
		return nil
	},
}
