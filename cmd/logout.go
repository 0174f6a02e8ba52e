package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"nio/internal/auth"
	"nio/internal/db"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored personal token",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		conn, err := db.Open(cfg.Storage.Path)
		if err != nil {
			return fmt.Errorf("error opening database: %w", err)
		}
		defer conn.Close()

		if err := auth.New(conn, "").Logout(context.Background()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
