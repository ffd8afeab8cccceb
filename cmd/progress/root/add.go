package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"progresstracker/model"
)

func newAddCmd() *cobra.Command {
	var description string
	var category string
	var target int
	var unit string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := parseCategory(category)
			if err != nil {
				return err
			}
			if target <= 0 {
				return errors.New("target must be a positive number")
			}

			svc, err := openService()
			if err != nil {
				return err
			}

			g := model.NewGoal(strings.TrimSpace(args[0]), strings.TrimSpace(description), cat, target, strings.TrimSpace(unit))
			if err := svc.AddGoal(g); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), goodStyle.Render("✓ goal created"),
				faintStyle.Render(fmt.Sprintf("%s (%s, target %d %s)", g.Title, g.Category.DisplayName(), g.TargetValue, g.Unit)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "D", "", "Goal description")
	cmd.Flags().StringVarP(&category, "category", "c", "personal", "Category (personal|health|career|learning|finance|fitness|creative)")
	cmd.Flags().IntVarP(&target, "target", "t", 100, "Target value")
	cmd.Flags().StringVarP(&unit, "unit", "u", "%", "Display unit")

	return cmd
}

func parseCategory(input string) (model.Category, error) {
	c := model.Category(strings.ToUpper(strings.TrimSpace(input)))
	for _, known := range model.Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("invalid category: %q", input)
}
