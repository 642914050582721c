package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskomat/taskomat/internal/daemon"
	"github.com/taskomat/taskomat/internal/domain"
)

func init() {
	rootCmd.AddCommand(addCmd)
}

var addCmd = &cobra.Command{
	Use:   "add COMMAND...",
	Short: "Submit a natural-language task command",
	Long: `Run the full pipeline on a command and submit the resulting tasks.

Example:
  taskomat add "kup mleko i zadzwoń do mamy priorytet 3 jutro"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	command := strings.Join(args, " ")

	d, err := daemon.New()
	if err != nil {
		return err
	}
	defer d.Close()

	results, err := d.AddTasks(cmd.Context(), command)
	if err != nil {
		return err
	}

	failed := 0
	for i, r := range results {
		switch r.Status {
		case domain.StatusSuccess:
			line := fmt.Sprintf("✓ [%d] %s (priority %d", i+1, r.Content, r.Priority)
			if r.Due != "" {
				line += ", due " + r.Due
			}
			line += ")"
			fmt.Println(line)
		default:
			failed++
			fmt.Fprintf(os.Stderr, "✗ [%d] %s: %s\n", i+1, r.Content, r.Diagnostic)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d tasks failed", failed, len(results))
	}
	return nil
}
