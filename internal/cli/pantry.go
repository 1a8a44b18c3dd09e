package cli

import (
	"fmt"

	"fridge-chef/internal/app"
	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/display"

	"github.com/spf13/cobra"
)

func (r *runner) pantryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "pantry",
		Aliases: []string{"fridge"},
		Short:   "Manage what is in the fridge",
	}
	cmd.AddCommand(r.pantryListCommand(), r.pantryAddCommand(), r.pantryRemoveCommand())
	return cmd
}

func (r *runner) pantryListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List ingredients grouped by storage",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				views, err := a.Pantry.List(cmd.Context())
				if err != nil {
					return err
				}
				if r.jsonOut {
					return display.PrintPantryJSON(cmd.OutOrStdout(), views)
				}
				display.PrintPantry(cmd.OutOrStdout(), views)
				return nil
			})
		},
	}
}

func (r *runner) pantryAddCommand() *cobra.Command {
	var (
		expiry    string
		storage   string
		seasoning bool
	)
	cmd := &cobra.Command{
		Use:   "add NAME",
		Short: "Add an ingredient or replace an existing one",
		Example: `  fridgectl pantry add 두부 --expiry 2026-10-25
  fridgectl pantry add 삼겹살 --storage freezer
  fridgectl pantry add 간장 --seasoning`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := pantry.AddRequest{Name: args[0], Storage: storage, Seasoning: seasoning}
			if expiry != "" {
				d, err := pantry.ParseDate(expiry)
				if err != nil {
					return err
				}
				req.Expiry = d
			}
			return r.withApp(cmd, func(a *app.App) error {
				item, err := a.Pantry.Add(cmd.Context(), req)
				if err != nil {
					return err
				}
				if r.jsonOut {
					return display.PrintJSON(cmd.OutOrStdout(), map[string]interface{}{"item": item})
				}
				display.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s 추가됨", item.Name))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&expiry, "expiry", "", "Expiry date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&storage, "storage", "", "fridge or freezer (default fridge)")
	cmd.Flags().BoolVar(&seasoning, "seasoning", false, "Sauce or seasoning, expiry is not tracked")
	return cmd
}

func (r *runner) pantryRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove an ingredient",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				if err := a.Pantry.Remove(cmd.Context(), args[0]); err != nil {
					return err
				}
				if r.jsonOut {
					return display.PrintJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
				}
				display.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s 삭제됨", args[0]))
				return nil
			})
		},
	}
}
