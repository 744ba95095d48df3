package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/core/config"
	"invoicely.app/api/core/db"
)

func init() {
	upCommand.Flags().Int("steps", 0, "apply at most this many migrations (0 applies all)")
	downCommand.Flags().Int("steps", 1, "roll back this many migrations (0 rolls back everything)")

	Command.AddCommand(upCommand)
	Command.AddCommand(downCommand)
}

var Command = &cobra.Command{
	Use:   "migrate",
	Short: "Applies or rolls back the embedded schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var upCommand = &cobra.Command{
	Use:   "up",
	Short: "Applies pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := cmd.Flags().GetInt("steps")
		if err != nil {
			return err
		}
		if steps < 0 {
			return fmt.Errorf("--steps must not be negative")
		}
		return run(db.MigrateOpts{Steps: steps})
	},
}

var downCommand = &cobra.Command{
	Use:   "down",
	Short: "Rolls back applied migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, err := cmd.Flags().GetInt("steps")
		if err != nil {
			return err
		}
		if steps < 0 {
			return fmt.Errorf("--steps must not be negative")
		}
		if steps == 0 {
			return run(db.MigrateOpts{Down: true})
		}
		return run(db.MigrateOpts{Steps: -steps})
	},
}

func run(opts db.MigrateOpts) error {
	cfg, err := config.Load(config.ServiceTypeAdmin)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg)

	opts.DSN = cfg.DB.DSN
	return db.Migrate(opts)
}
