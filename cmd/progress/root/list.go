package root

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"progresstracker/stats"
)

func newListCmd() *cobra.Command {
	var habitsOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals and habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !habitsOnly {
				fmt.Fprintln(out, boldStyle.Render("Goals"))
				goals := svc.Goals()
				if len(goals) == 0 {
					fmt.Fprintln(out, faintStyle.Render("  none yet — try: progress add \"Read 12 books\" -t 12 -u books"))
				}
				for _, g := range goals {
					state := "○"
					if g.IsCompleted {
						state = goodStyle.Render("✓")
					}
					fmt.Fprintf(out, "  %s %s %s\n", state, g.Title,
						faintStyle.Render(fmt.Sprintf("[%s] %d / %d %s (%d%%)",
							g.Category.DisplayName(), g.CurrentValue, g.TargetValue, g.Unit, stats.ProgressPercent(g))))
				}
				fmt.Fprintln(out)
			}

			fmt.Fprintln(out, boldStyle.Render("Habits"))
			habits := svc.Habits()
			if len(habits) == 0 {
				fmt.Fprintln(out, faintStyle.Render("  none yet — try: progress habit add \"Meditate\""))
			}
			now := time.Now()
			for _, h := range habits {
				check := "[ ]"
				if stats.IsCompletedOnDate(h, now) {
					check = goodStyle.Render("[x]")
				}
				fmt.Fprintf(out, "  %s %s %s\n", check, h.Title,
					faintStyle.Render(fmt.Sprintf("(%s) streak %d, best %d",
						h.Frequency.DisplayName(), h.Streak, h.LongestStreak)))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&habitsOnly, "habits", false, "Only list habits")

	return cmd
}
