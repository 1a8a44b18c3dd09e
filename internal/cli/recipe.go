package cli

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"

	"fridge-chef/internal/app"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/display"
	"fridge-chef/internal/pkg/common"

	"github.com/spf13/cobra"
)

func (r *runner) recipeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "recipe",
		Aliases: []string{"recipes"},
		Short:   "Manage the recipe book",
	}
	cmd.AddCommand(
		r.recipeListCommand(),
		r.recipeAddCommand(),
		r.recipeRemoveCommand(),
		r.recipeExtractCommand(),
	)
	return cmd
}

func (r *runner) recipeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved recipes",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				entries, err := a.Recipes.List(cmd.Context())
				if err != nil {
					return err
				}
				if r.jsonOut {
					return display.PrintRecipesJSON(cmd.OutOrStdout(), entries)
				}
				display.PrintRecipes(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
}

func (r *runner) recipeAddCommand() *cobra.Command {
	var entry recipe.Entry
	cmd := &cobra.Command{
		Use:     "add NAME",
		Short:   "Add a recipe, replacing one with the same name and link",
		Example: `  fridgectl recipe add 김치찌개 --ingredients "김치, 두부, 돼지고기 목살 200g, 대파" --link https://example.com/kimchi`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry.Name = args[0]
			return r.withApp(cmd, func(a *app.App) error {
				saved, err := a.Recipes.Add(cmd.Context(), entry)
				if err != nil {
					return err
				}
				if r.jsonOut {
					return display.PrintJSON(cmd.OutOrStdout(), map[string]interface{}{"recipe": saved})
				}
				display.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s 저장됨", saved.Name))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&entry.Ingredients, "ingredients", "i", "", "Comma separated ingredients")
	cmd.Flags().StringVar(&entry.Link, "link", "", "Source link")
	cmd.Flags().StringVar(&entry.Steps, "steps", "", "Cooking steps")
	return cmd
}

func (r *runner) recipeRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm NAME",
		Aliases: []string{"remove"},
		Short:   "Remove every recipe with the given name",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.withApp(cmd, func(a *app.App) error {
				if err := a.Recipes.Delete(cmd.Context(), args[0]); err != nil {
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

func (r *runner) recipeExtractCommand() *cobra.Command {
	var (
		link string
		save bool
	)
	cmd := &cobra.Command{
		Use:   "extract IMAGE...",
		Short: "Read a recipe from one or more photos",
		Long: "Send recipe photos (local files or image URLs) to the vision model and print\n" +
			"the draft. Pages are read in order as one recipe. Use --save to store it.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			images := make([]string, 0, len(args))
			for _, arg := range args {
				img, err := loadImage(arg)
				if err != nil {
					return err
				}
				images = append(images, img)
			}
			return r.withApp(cmd, func(a *app.App) error {
				if a.Intake == nil {
					return common.ErrAIDisabled
				}
				draft, err := a.Intake.Extract(cmd.Context(), images)
				if err != nil {
					return err
				}
				var saved *recipe.Entry
				if save {
					entry, err := a.Recipes.Add(cmd.Context(), draft.Entry(link))
					if err != nil {
						return err
					}
					saved = &entry
				}
				if r.jsonOut {
					return display.PrintJSON(cmd.OutOrStdout(), map[string]interface{}{"draft": draft, "saved": saved})
				}
				display.PrintRecipes(cmd.OutOrStdout(), []recipe.Entry{draft.Entry(link)})
				if saved != nil {
					display.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s 저장됨", saved.Name))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&link, "link", "", "Source link stored with the recipe")
	cmd.Flags().BoolVar(&save, "save", false, "Save the extracted recipe to the book")
	return cmd
}

// loadImage 本機檔案轉為 data URI，URL 原樣傳遞
func loadImage(arg string) (string, error) {
	if common.IsHTTPURL(arg) {
		return arg, nil
	}
	data, err := os.ReadFile(arg)
	if err != nil {
		return "", common.NewValidationError(fmt.Sprintf("cannot read image %q: %v", arg, err))
	}
	return "data:" + http.DetectContentType(data) + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
