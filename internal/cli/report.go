package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func (a *App) leaderboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Print every user ranked by total hours",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			board, err := a.agg.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}
			if len(board) == 0 {
				fmt.Fprintln(a.out, "No users registered.")
				return nil
			}

			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tEMAIL\tHOURS")
			for i, e := range board {
				fmt.Fprintf(tw, "%d\t%s\t%.2f\n", i+1, e.Email, e.TotalHours)
			}
			return tw.Flush()
		},
	}
}

func (a *App) rewardsCommand() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "rewards",
		Short: "Print a user's reward status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.auth.UserByEmail(cmd.Context(), email)
			if err != nil {
				return err
			}
			status, err := a.agg.RewardStatus(cmd.Context(), u.ID)
			if err != nil {
				return err
			}

			fmt.Fprintf(a.out, "%s: %.2f hours\n", u.Email, status.TotalHours)
			for _, t := range status.Earned {
				fmt.Fprintf(a.out, "  [x] %s (%.0f h)\n", t.Name, t.Hours)
			}
			for _, t := range status.Pending {
				fmt.Fprintf(a.out, "  [ ] %s (%.0f h)\n", t.Name, t.Hours)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "account email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *App) eventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events",
		Short: "Print the configured events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DATE\tTITLE\tLOCATION")
			for _, e := range a.events.List() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Date, e.Title, e.Location)
			}
			return tw.Flush()
		},
	}
}
