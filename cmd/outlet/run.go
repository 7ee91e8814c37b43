package main

import (
	"github.com/aretw0/outlet/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <scenario.yaml>",
	Short: "Replay a scenario and check its expectations",
	Long: `Replays the steps of a scenario file against an in-memory workspace,
printing the layout after every step. The command fails when a step errors
without expecting it or when an expectation does not hold.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		jsonMode, _ := cmd.Flags().GetBool("json")
		mermaid, _ := cmd.Flags().GetBool("mermaid")
		plain, _ := cmd.Flags().GetBool("plain")

		_, err = cli.RunScenario(cmd.Context(), cmd.OutOrStdout(), args[0], cli.RunOptions{
			JSON:    jsonMode,
			Mermaid: mermaid,
			Plain:   plain,
			Logger:  logger,
		})
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("json", false, "Print the report as JSON")
	runCmd.Flags().Bool("mermaid", false, "Print a Mermaid diagram of the final layout")
	runCmd.Flags().Bool("plain", false, "Disable the banner and markdown styling")
	runCmd.MarkFlagsMutuallyExclusive("json", "mermaid")
}
