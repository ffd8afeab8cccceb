package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"progresstracker/model"
)

func newHabitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "habit",
		Short: "Manage habits",
	}
	cmd.AddCommand(newHabitAddCmd(), newHabitToggleCmd())
	return cmd
}

func newHabitAddCmd() *cobra.Command {
	var description string
	var frequency string
	var targetDays int

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			freq, err := parseFrequency(frequency)
			if err != nil {
				return err
			}

			svc, err := openService()
			if err != nil {
				return err
			}

			h := model.NewHabit(strings.TrimSpace(args[0]), strings.TrimSpace(description), freq, targetDays)
			if err := svc.AddHabit(h); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), goodStyle.Render("✓ habit created"),
				faintStyle.Render(fmt.Sprintf("%s (%s)", h.Title, h.Frequency.DisplayName())))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "desc", "D", "", "Habit description")
	cmd.Flags().StringVarP(&frequency, "freq", "f", "daily", "Frequency (daily|weekly|weekdays|weekends)")
	cmd.Flags().IntVarP(&targetDays, "days", "n", 30, "Target days")

	return cmd
}

func newHabitToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <title>",
		Short: "Toggle today's completion for a habit",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("habit title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}

			title := strings.TrimSpace(args[0])
			for _, h := range svc.Habits() {
				if !strings.EqualFold(h.Title, title) {
					continue
				}
				next := svc.ToggleHabitToday(h)
				if err := svc.UpdateHabit(next); err != nil {
					return err
				}
				verb := "done today"
				if next.Streak < h.Streak {
					verb = "unmarked for today"
				}
				fmt.Fprintln(cmd.OutOrStdout(), goodStyle.Render("✓ "+next.Title+" "+verb),
					faintStyle.Render(fmt.Sprintf("streak %d, best %d", next.Streak, next.LongestStreak)))
				return nil
			}
			return fmt.Errorf("no habit titled %q", title)
		},
	}
}

func parseFrequency(input string) (model.Frequency, error) {
	f := model.Frequency(strings.ToUpper(strings.TrimSpace(input)))
	for _, known := range model.Frequencies() {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("invalid frequency: %q", input)
}
