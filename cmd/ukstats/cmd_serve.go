package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"ukstats/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the compiled statistics over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, dir, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}
		addr := fmt.Sprintf(":%d", port)
		logger.Infow("serving", "addr", addr, "data_dir", dir)
		return server.NewServer(cfg, st, dir).Run(addr)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (defaults to config)")
	rootCmd.AddCommand(serveCmd)
}
