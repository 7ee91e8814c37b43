package main

import (
	"fmt"

	"github.com/aretw0/outlet/internal/presentation/tui"
	"github.com/aretw0/outlet/internal/scenario"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <scenario.yaml>...",
	Short: "Check scenario files without running them",
	Long:  `Parses each scenario and reports unknown fields, duplicate names, unknown outlets and unknown actions.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var failed int
		for _, path := range args {
			s, err := scenario.LoadFile(path)
			if err != nil {
				failed++
				fmt.Fprintln(cmd.OutOrStdout(), tui.Status(false, err.Error()))
				continue
			}
			fmt.Fprintln(cmd.OutOrStdout(), tui.Status(true, fmt.Sprintf("%s: %s (%d steps)", path, s.Name, len(s.Steps))))
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d scenarios are invalid", failed, len(args))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
