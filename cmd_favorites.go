package main

import (
	"context"
	"fmt"

	"github.com/epeers/krxdash/config"
	"github.com/epeers/krxdash/internal/models"
	"github.com/epeers/krxdash/internal/repository"
	"github.com/epeers/krxdash/internal/services"
	"github.com/spf13/cobra"
)

func newFavoritesCmd(getConfig func() *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage the favorites file",
		Long: `Manage the favorites shared by every dashboard session.

Available subcommands:
  list   - Print the favorites in display order
  toggle - Add a company, or remove it if already present
  remove - Remove a company`,
	}

	sessionFor := func(ctx context.Context) (*services.SessionService, models.SessionState) {
		svc := services.NewSessionService(repository.NewFavoritesRepository(getConfig().FavoritesFile))
		return svc, svc.NewSession(ctx)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, wc := services.NewWarningContext(cmd.Context())
			_, state := sessionFor(ctx)
			for _, w := range wc.GetWarnings() {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning [%s] %s\n", w.Code, w.Message)
			}
			for _, name := range state.Favorites.Sorted() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "toggle <company>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, state := sessionFor(cmd.Context())
			next, err := svc.ToggleFavorite(state, args[0])
			if err != nil {
				return err
			}
			if next.Favorites.Contains(next.SearchText) {
				fmt.Fprintf(cmd.OutOrStdout(), "⭐ %s\n", next.SearchText)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "☆ %s\n", next.SearchText)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <company>",
		Short: "Remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, state := sessionFor(cmd.Context())
			if !state.Favorites.Contains(args[0]) {
				return fmt.Errorf("%q is not a favorite", args[0])
			}
			if _, err := svc.RemoveFavorite(state, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	})
	return cmd
}
