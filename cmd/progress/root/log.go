package root

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"progresstracker/model"
	"progresstracker/stats"
)

func newLogCmd() *cobra.Command {
	var notes string

	cmd := &cobra.Command{
		Use:   "log <goal title> <amount>",
		Short: "Log progress against a goal",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("goal title and amount are required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := strconv.Atoi(args[1])
			if err != nil || amount <= 0 {
				return errors.New("amount must be a positive number")
			}

			svc, err := openService()
			if err != nil {
				return err
			}

			title := strings.TrimSpace(args[0])
			for _, g := range svc.Goals() {
				if !strings.EqualFold(g.Title, title) {
					continue
				}
				if err := svc.LogProgress(model.NewLog(g.ID, amount, strings.TrimSpace(notes))); err != nil {
					return err
				}
				for _, updated := range svc.Goals() {
					if updated.ID == g.ID {
						fmt.Fprintln(cmd.OutOrStdout(), goodStyle.Render(fmt.Sprintf("✓ +%d %s", amount, updated.Unit)),
							faintStyle.Render(fmt.Sprintf("%s now at %d / %d (%d%%)",
								updated.Title, updated.CurrentValue, updated.TargetValue, stats.ProgressPercent(updated))))
						break
					}
				}
				return nil
			}
			return fmt.Errorf("no goal titled %q", title)
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "m", "", "Optional note for this entry")

	return cmd
}
