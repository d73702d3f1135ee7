package main

import (
	"github.com/spf13/cobra"

	"github.com/neonyanbbcode/MarketAnly/config"
	"github.com/neonyanbbcode/MarketAnly/internal/logging"
	srv "github.com/neonyanbbcode/MarketAnly/internal/server"
)

func serveCMD() *cobra.Command {
	var cfgPath string
	var addr string
	var serve = &cobra.Command{
		Use:   "serve",
		Short: "Run the analysis HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Address = addr
			}
			if err := logging.Init(cfg.General.LogLevel, cfg.General.LogFile); err != nil {
				return err
			}
			return srv.Run(cfg)
		},
	}
	serve.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	serve.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "config file (default is ./config.yaml)")

	return serve
}
