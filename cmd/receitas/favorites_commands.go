package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/receitas/backend/internal/model"
)

func newFavoritesCommand(ctx *commandContext) *cobra.Command {
	favoritesCmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage favorite recipes",
	}

	favoritesCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List favorite recipes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			list := app.Favorites.List()
			if ctx.jsonOutput() {
				return writeJSON(cmd, list)
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No favorites yet")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRecipes(list))
			return nil
		},
	})

	favoritesCmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Bookmark a recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			recipe := app.Source.LookupRecipe(cmd.Context(), args[0])
			if recipe == nil {
				return fmt.Errorf("recipe %s: %w", args[0], model.ErrNotFound)
			}
			if err := app.Favorites.Add(cmd.Context(), *recipe); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s)\n", recipe.Name, recipe.ID)
			return nil
		},
	})

	favoritesCmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a bookmarked recipe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Favorites.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
			return nil
		},
	})

	favoritesCmd.AddCommand(&cobra.Command{
		Use:   "check <id>",
		Short: "Report whether a recipe is bookmarked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			fav := app.Favorites.IsFavorite(args[0])
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"id": args[0], "favorite": fav})
			}
			fmt.Fprintln(cmd.OutOrStdout(), fav)
			return nil
		},
	})

	return favoritesCmd
}
