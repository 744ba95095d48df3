package invitations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"invoicely.app/api/common/logger"
	"invoicely.app/api/core/config"
	"invoicely.app/api/core/db"
	"invoicely.app/api/internal/service"
	"invoicely.app/api/internal/store"
)

func init() {
	cleanupCommand.Flags().Int64("org", 0, "only clean up this organization's invitations")
	Command.AddCommand(cleanupCommand)
}

var Command = &cobra.Command{
	Use:     "invitations",
	Aliases: []string{"inv"},
	Short:   "Invitation maintenance",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var cleanupCommand = &cobra.Command{
	Use:   "cleanup",
	Short: "Deletes expired pending invitations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		orgID, err := cmd.Flags().GetInt64("org")
		if err != nil {
			return err
		}

		cfg, err := config.Load(config.ServiceTypeAdmin)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Setup(cfg)

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
		defer cancel()

		database, err := db.New(ctx, cfg.DB)
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()

		stores := store.NewStores(database.Queries())
		invitations := service.NewInvitationService(
			stores.Memberships(),
			stores.Organizations(),
			service.NewTxRunner(database),
			nil,
			cfg.Invitations.Expiry(),
			time.Now,
		)

		var removed int
		if orgID > 0 {
			removed, err = invitations.CleanupExpiredForOrg(ctx, orgID)
		} else {
			removed, err = invitations.CleanupExpiredAll(ctx)
		}
		if err != nil {
			return fmt.Errorf("cleaning up invitations: %w", err)
		}

		slog.InfoContext(ctx, "expired invitations removed", "count", removed, "organization_id", orgID)
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d expired invitation(s)\n", removed)
		return nil
	},
}
