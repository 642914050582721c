package cli

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/taskomat/taskomat/internal/daemon"
)

func init() {
	rootCmd.AddCommand(parseCmd)
}

var parseCmd = &cobra.Command{
	Use:   "parse COMMAND...",
	Short: "Dry-run the parser without submitting anything",
	Long: `Normalize, split, and extract a command, then print the parsed
tasks as JSON. No network calls are made — useful for checking how a
command will be interpreted and for tuning the vocabulary file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	command := strings.Join(args, " ")

	cfg, err := daemon.LoadConfig()
	if err != nil {
		return err
	}
	// Never touch network or disk state in a dry run.
	cfg.History.Enabled = false

	d, err := daemon.NewWithConfig(cfg)
	if err != nil {
		return err
	}
	defer d.Close()

	tasks, err := d.Pipeline.Parse(command)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(tasks)
}
