package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newNewCmd() *cobra.Command {
	var rounds int

	cmd := &cobra.Command{
		Use:   "new <player>...",
		Short: "Start a new game",
		Long: `Start a new game with the given players. The game code is remembered
so subsequent commands apply to it automatically.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"players": args}
			if rounds > 0 {
				req["total_rounds"] = rounds
			}

			var result Session

			if err := client.Post("/api/v1/sessions", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSessionCode(result.Code); err != nil {
				return fmt.Errorf("game created but code could not be remembered: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&rounds, "rounds", 0, "Number of rounds (default: server default)")

	return cmd
}

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get [code]",
		Short: "Show the game state",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.ResolveCode(args)
			if err != nil {
				return err
			}

			var result Session

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot>",
		Short: "Import a shared game",
		Long: `Import a game from a share code. A copy of the shared game is created
under a fresh code, which becomes the remembered game.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"snapshot": args[0]}

			var result Session

			if err := client.Post("/api/v1/sessions/import", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveSessionCode(result.Code); err != nil {
				return fmt.Errorf("game imported but code could not be remembered: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset [code]",
		Short: "Clear all scores and return the game to setup",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.ResolveCode(args)
			if err != nil {
				return err
			}

			var result Session

			if err := client.Post(fmt.Sprintf("/api/v1/sessions/%s/reset", code), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s reset", code))
			return nil
		},
	}
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [code]",
		Short: "Delete a game",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.ResolveCode(args)
			if err != nil {
				return err
			}

			if err := client.Delete(fmt.Sprintf("/api/v1/sessions/%s", code)); err != nil {
				return err
			}

			// Forget the remembered code if it was the one deleted
			if code == cfg.SessionCode {
				if err := cfg.ClearSessionCode(); err != nil {
					return err
				}
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Game %s deleted", code))
			return nil
		},
	}
}
