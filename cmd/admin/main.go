package main

import (
	"os"

	"github.com/spf13/cobra"

	"invoicely.app/api/cmd/admin/invitations"
	"invoicely.app/api/cmd/admin/migrate"
)

func init() {
	Command.AddCommand(migrate.Command)
	Command.AddCommand(invitations.Command)
}

var Command = &cobra.Command{
	Use:          "invoicely-admin",
	Short:        "Operational commands that talk to the database directly",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func main() {
	if err := Command.Execute(); err != nil {
		os.Exit(1)
	}
}
