package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pageza/receitas/backend/internal/model"
)

func newLocaleCommand(ctx *commandContext) *cobra.Command {
	localeCmd := &cobra.Command{
		Use:   "locale",
		Short: "Show or change the active locale",
	}

	localeCmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the active locale",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, map[string]any{"locale": app.Locale.Get(), "supported": model.SupportedLocales()})
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Locale.Get())
			return nil
		},
	})

	localeCmd.AddCommand(&cobra.Command{
		Use:   "set <locale>",
		Short: "Set the active locale (pt, en, es)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			locale, err := model.ParseLocale(args[0])
			if err != nil {
				return err
			}
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			if err := app.Locale.Set(cmd.Context(), locale); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Locale set to %s\n", locale)
			return nil
		},
	})

	return localeCmd
}
