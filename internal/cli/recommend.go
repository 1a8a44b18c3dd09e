package cli

import (
	"fmt"

	"fridge-chef/internal/app"
	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/display"

	"github.com/spf13/cobra"
)

func (r *runner) recommendCommand() *cobra.Command {
	var (
		count   int
		narrate bool
		reset   bool
	)
	cmd := &cobra.Command{
		Use:     "recommend",
		Aliases: []string{"next"},
		Short:   "Recommend the next dish for what is in the fridge",
		Long: "Pick the recipe whose ingredients best match the fridge, skipping dishes\n" +
			"already shown in this session. When every recipe has been shown the\n" +
			"session starts over. With the memory session backend the session lasts\n" +
			"for one invocation; use --count to walk several dishes at once.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return fmt.Errorf("invalid argument %d for --count: must be at least 1", count)
			}
			return r.withApp(cmd, func(a *app.App) error {
				ctx := cmd.Context()
				if reset {
					if err := a.Recommend.Reset(ctx, r.session); err != nil {
						return err
					}
				}
				results := make([]recommend.Result, 0, count)
				for i := 0; i < count; i++ {
					res, err := a.Recommend.Next(ctx, r.session, narrate)
					if err != nil {
						return err
					}
					results = append(results, *res)
				}
				if r.jsonOut {
					return display.PrintRecommendationsJSON(cmd.OutOrStdout(), results)
				}
				for _, res := range results {
					display.PrintRecommendation(cmd.OutOrStdout(), res)
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", 1, "Number of dishes to recommend")
	cmd.Flags().BoolVar(&narrate, "narrate", false, "Ask the AI for a short reason")
	cmd.Flags().BoolVar(&reset, "reset", false, "Forget dishes already shown in this session")
	return cmd
}

func (r *runner) cookCommand() *cobra.Command {
	var remove bool
	cmd := &cobra.Command{
		Use:   "cook RECIPE",
		Short: "Show the steps and which fridge items the recipe uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				ctx := cmd.Context()
				res, err := a.Recommend.Cook(ctx, args[0])
				if err != nil {
					return err
				}
				if remove {
					for _, name := range res.Used {
						if err := a.Pantry.Remove(ctx, name); err != nil {
							return err
						}
					}
				}
				if r.jsonOut {
					return display.PrintJSON(cmd.OutOrStdout(), map[string]interface{}{"cook": res, "removed": remove})
				}
				display.PrintCook(cmd.OutOrStdout(), *res)
				if remove && len(res.Used) > 0 {
					display.PrintWarning(cmd.OutOrStdout(), fmt.Sprintf("냉장고에서 %d개 재료를 뺐습니다", len(res.Used)))
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&remove, "remove", false, "Remove the used items from the fridge")
	return cmd
}
