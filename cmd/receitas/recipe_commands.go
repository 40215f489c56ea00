package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/service"
)

// newListingCommands builds one command per search action.
func newListingCommands(ctx *commandContext) []*cobra.Command {
	specs := []struct {
		kind  service.ActionKind
		use   string
		short string
		args  cobra.PositionalArgs
	}{
		{service.ActionSearch, "search <text>", "Search recipes by name", cobra.MinimumNArgs(1)},
		{service.ActionCategory, "category [name]", "List recipes in a category (no name lists random recipes)", cobra.ArbitraryArgs},
		{service.ActionIngredient, "ingredient <name>", "List recipes using an ingredient", cobra.MinimumNArgs(1)},
		{service.ActionRandom, "random", "List random recipes", cobra.NoArgs},
	}

	cmds := make([]*cobra.Command, 0, len(specs))
	for _, s := range specs {
		cmds = append(cmds, &cobra.Command{
			Use:   s.use,
			Short: s.short,
			Args:  s.args,
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := ctx.ensureApp(cmd)
				if err != nil {
					return err
				}
				action := service.Action{Kind: s.kind, Query: strings.Join(args, " ")}
				recipes, ok := app.Search.Dispatch(cmd.Context(), action)
				if !ok {
					return fmt.Errorf("nothing to search for")
				}
				if ctx.jsonOutput() {
					return writeJSON(cmd, recipes)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRecipes(recipes))
				return nil
			},
		})
	}
	return cmds
}

func newCategoriesCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List recipe categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			categories := app.Source.Categories(cmd.Context())
			if ctx.jsonOutput() {
				return writeJSON(cmd, categories)
			}
			rows := make([][]string, 0, len(categories))
			for _, c := range categories {
				rows = append(rows, []string{c.ID, c.Name})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "Category"}, rows, []columnAlignment{alignRight}))
			return nil
		},
	}
}

// resolveLocale returns the --locale flag or the stored locale.
func resolveLocale(flag string, stored model.Locale) (model.Locale, error) {
	if flag == "" {
		return stored, nil
	}
	return model.ParseLocale(flag)
}

func newShowCommand(ctx *commandContext) *cobra.Command {
	var localeFlag string
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a recipe translated into the active locale",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			locale, err := resolveLocale(localeFlag, app.Locale.Get())
			if err != nil {
				return err
			}
			recipe := app.Detail.AssembleDetail(cmd.Context(), args[0], locale)
			if recipe == nil {
				return fmt.Errorf("recipe %s: %w", args[0], model.ErrNotFound)
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, recipe)
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderDetail(recipe))
			return nil
		},
	}
	cmd.Flags().StringVarP(&localeFlag, "locale", "l", "", "Locale to translate into (pt, en, es)")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var localeFlag string
	var outFlag string
	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export a recipe as a Markdown document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := ctx.ensureApp(cmd)
			if err != nil {
				return err
			}
			locale, err := resolveLocale(localeFlag, app.Locale.Get())
			if err != nil {
				return err
			}
			res, err := app.Exporter.Export(cmd.Context(), args[0], locale)
			if err != nil {
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, res)
			}
			if outFlag != "" {
				if err := os.WriteFile(outFlag, res.Body, 0o644); err != nil {
					return fmt.Errorf("write %s: %w", outFlag, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", outFlag)
			} else if res.URL == "" {
				_, err := cmd.OutOrStdout().Write(res.Body)
				return err
			}
			if res.URL != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Download: %s\n", res.URL)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&localeFlag, "locale", "l", "", "Locale to translate into (pt, en, es)")
	cmd.Flags().StringVarP(&outFlag, "out", "o", "", "Write the document to this file")
	return cmd
}
