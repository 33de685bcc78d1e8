package main

import (
	"github.com/deppfellow/shoppingcart/internal/config"
	"github.com/deppfellow/shoppingcart/internal/database"
	"github.com/deppfellow/shoppingcart/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		log := logger.NewLogger(cfg.Observability)
		return database.Migrate(cmd.Context(), &log, cfg)
	},
}
