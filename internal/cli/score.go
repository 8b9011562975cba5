package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var code string

	cmd := &cobra.Command{
		Use:   "score <player>=<score>...",
		Short: "Record one round of scores",
		Long: `Record a round by giving every player's score, for example:

  skyjo score Alice=12 Bob=-2`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scores, err := parseScoreArgs(args)
			if err != nil {
				return err
			}

			target, err := cfg.ResolveCode(codeArgs(code))
			if err != nil {
				return err
			}

			req := map[string]any{"scores": scores}

			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/rounds", target), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Game code (default: remembered game)")

	return cmd
}

func newStandingsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "standings [code]",
		Short: "Show the current standings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.ResolveCode(args)
			if err != nil {
				return err
			}

			var result []Standing

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s/standings", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newChartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chart [code]",
		Short: "Show cumulative scores by round",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.ResolveCode(args)
			if err != nil {
				return err
			}

			var result Chart

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s/chart", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// parseScoreArgs parses "name=score" pairs into a score map
func parseScoreArgs(args []string) (map[string]int, error) {
	scores := make(map[string]int, len(args))
	for _, arg := range args {
		name, raw, found := strings.Cut(arg, "=")
		if !found || name == "" {
			return nil, fmt.Errorf("invalid score %q, expected <player>=<score>", arg)
		}
		value, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid score %q for %s, expected a whole number", raw, name)
		}
		scores[name] = value
	}
	return scores, nil
}

// codeArgs adapts an optional --code flag to the positional-arg resolver
func codeArgs(code string) []string {
	if code == "" {
		return nil
	}
	return []string{code}
}
