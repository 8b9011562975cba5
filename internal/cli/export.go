package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "export [code]",
		Short: "Export the scores as CSV",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.ResolveCode(args)
			if err != nil {
				return err
			}

			data, disposition, err := client.GetRaw(fmt.Sprintf("/api/v1/sessions/%s/export", code))
			if err != nil {
				return err
			}

			if file == "" {
				// Write to stdout
				_, err := os.Stdout.Write(data)
				return err
			}

			target := file
			if target == "auto" {
				target = filenameFromDisposition(disposition)
				if target == "" {
					target = "skyjo_scores.csv"
				}
			}

			if err := os.WriteFile(target, data, 0644); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Wrote %s", target))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout ('auto' uses the server's filename)")

	return cmd
}

func newShareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "share [code]",
		Short: "Print a share code for the game",
		Long: `Print an encoded snapshot of the game. Anyone can import it with
'skyjo import' to get their own copy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := cfg.ResolveCode(args)
			if err != nil {
				return err
			}

			var result Share

			if err := client.Get(fmt.Sprintf("/api/v1/sessions/%s/share", code), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

// filenameFromDisposition pulls the filename out of a Content-Disposition header
func filenameFromDisposition(disposition string) string {
	const marker = `filename="`
	start := strings.Index(disposition, marker)
	if start < 0 {
		return ""
	}
	rest := disposition[start+len(marker):]
	end := strings.Index(rest, `"`)
	if end < 0 {
		return ""
	}
	return rest[:end]
}
