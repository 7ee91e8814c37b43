package main

import (
	"github.com/aretw0/outlet/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves outlet sessions as a JSON API, with a Server-Sent Events stream of
placement events per session and Prometheus metrics on /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.HTTP.Addr = addr
		}

		st, err := cli.NewStack(cfg, logger)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cli.NewSignalContext(cmd.Context())
		defer ctx.Stop()
		return cli.ServeHTTP(ctx, st, cfg, logger)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("addr", "a", "", "Address to listen on (overrides http.addr)")
}
