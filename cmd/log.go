package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/ssh-keys/internal/audit"
	"github.com/PolarWolf314/ssh-keys/internal/utils"
	"github.com/PolarWolf314/ssh-keys/internal/workflows"
)

var (
	logLimit     int
	logReverse   bool
	logOperation string
	logSince     string
	logUntil     string
	logAllIDs    bool
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries on or after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries on or before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logAllIDs, "all", false, "show entries for every secret id, not only --secret-id")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logOperation = ""
	logSince = ""
	logUntil = ""
	logAllIDs = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the local history of get and put",
	Long: `Displays the audit log this machine keeps of successful get and put
operations, oldest first. Only entries for the current --secret-id are shown
unless --all is given.

Examples:
  ssh-keys log                     # View full log
  ssh-keys log -n 10               # Last 10 entries
  ssh-keys log --reverse           # Most recent first
  ssh-keys log --operation put     # Only uploads
  ssh-keys log --since 2024-01-01  # Filter by date
  ssh-keys log --json              # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")
	out := cmd.OutOrStdout()

	opts := workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	}
	if !logAllIDs {
		opts.SecretID = secretID
	}

	result, err := workflows.Log(cmd.Context(), opts)
	if err != nil {
		return err
	}

	Logger.Debugf("Parsed %d entries from audit log %s", result.TotalEntriesBeforeFilter, audit.LogPath())
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if logJSON {
		entries := result.Entries
		if entries == nil {
			entries = []audit.Entry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal entries to JSON: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Fprintln(out, "No audit log entries found.")
		} else {
			fmt.Fprintln(out, "No audit log entries found matching the filters.")
		}
		return nil
	}

	outputLogDefault(out, result.Entries)
	return nil
}

func outputLogDefault(out io.Writer, entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatTimestamp(e.Timestamp)
		fmt.Fprintf(out, "%-19s  %-3s  %-20s  %s\n", datetime, e.Operation, e.SecretID, formatLogDetails(e))
	}
}

func formatLogDetails(e audit.Entry) string {
	files := utils.Plural(len(e.Files), "file")
	switch e.Operation {
	case "put":
		return fmt.Sprintf("%s from %s (version %s)", files, e.Directory, e.Version)
	case "get":
		return fmt.Sprintf("%s into %s", files, e.Directory)
	}
	return files
}
