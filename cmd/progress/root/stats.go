package root

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"progresstracker/model"
	"progresstracker/stats"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show analytics for goals and habits",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := openService()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			goals := svc.Goals()
			habits := svc.Habits()

			fmt.Fprintln(out, boldStyle.Render("Overview"))
			fmt.Fprintf(out, "  goals: %d (%d completed)  average progress: %d%%  total streak: %d  best streak: %d\n",
				len(goals), stats.CountCompleted(goals), stats.OverallAverageProgress(goals), stats.TotalStreak(habits), stats.BestLongestStreak(habits))
			fmt.Fprintln(out)

			fmt.Fprintln(out, boldStyle.Render("Goals by Category"))
			breakdown := stats.CategoryBreakdown(goals)
			if len(breakdown) == 0 {
				fmt.Fprintln(out, faintStyle.Render("  no goals to summarize"))
			}
			for _, row := range breakdown {
				fmt.Fprintf(out, "  %-10s %3d%%  %s\n", row.Category.DisplayName(), int(row.AvgFraction*100),
					faintStyle.Render(fmt.Sprintf("%d goals, %d done", row.Count, row.Completed)))
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, boldStyle.Render("Weekly Habit Completion"))
			for _, dc := range stats.WeeklyCompletionSeries(habits, time.Now()) {
				bar := strings.Repeat("█", dc.Count)
				if bar == "" {
					bar = faintStyle.Render("·")
				}
				fmt.Fprintf(out, "  %s %s %d\n", faintStyle.Render(dc.Day), bar, dc.Count)
			}
			fmt.Fprintln(out)

			fmt.Fprintln(out, boldStyle.Render("Recent Activity"))
			activity := stats.RecentActivity(svc.Logs(), goals, 10)
			if len(activity) == 0 {
				fmt.Fprintln(out, faintStyle.Render("  no progress logged yet"))
			}
			for _, a := range activity {
				fmt.Fprintf(out, "  +%d %s %s %s\n", a.Log.Value, a.Goal.Unit, a.Goal.Title,
					faintStyle.Render(model.TimeOf(a.Log.Date).Format("Jan 2, 2006 15:04")))
			}
			return nil
		},
	}
}
