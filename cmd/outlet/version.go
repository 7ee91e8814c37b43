package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/outlet"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of outlet",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "outlet version %s\n", strings.TrimSpace(outlet.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
