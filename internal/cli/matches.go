package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// matchRecord mirrors the server's match history response
type matchRecord struct {
	ID       string         `json:"id"`
	Winner   int            `json:"winner"`
	Draw     bool           `json:"draw"`
	Scores   map[string]int `json:"scores"`
	Reason   string         `json:"reason"`
	Duration float64        `json:"durationSeconds"`
	EndedAt  time.Time      `json:"endedAt"`
}

func newMatchesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List completed matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var matches []matchRecord
			if err := getJSON("/matches", &matches); err != nil {
				return err
			}
			if cfg.Output == "json" {
				return printJSON(matches)
			}
			if len(matches) == 0 {
				fmt.Println("no matches recorded")
				return nil
			}
			for _, m := range matches {
				fmt.Println(formatMatch(m))
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "get <id>",
		Short: "Show one match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var m matchRecord
			if err := getJSON("/matches/"+args[0], &m); err != nil {
				return err
			}
			if cfg.Output == "json" {
				return printJSON(m)
			}
			fmt.Println(formatMatch(m))
			return nil
		},
	})

	return cmd
}

func formatMatch(m matchRecord) string {
	outcome := fmt.Sprintf("player %d won", m.Winner)
	if m.Draw {
		outcome = "draw"
	}
	return fmt.Sprintf("%s  %s  %s (%s, %.0fs)  scores %d-%d",
		m.EndedAt.Format(time.RFC3339), m.ID, outcome, m.Reason, m.Duration,
		m.Scores["1"], m.Scores["2"])
}
