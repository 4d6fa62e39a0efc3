package workflows

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PolarWolf314/ssh-keys/internal/audit"
	kerrors "github.com/PolarWolf314/ssh-keys/internal/errors"
)

const auditTimestampLayout = "2006-01-02T15:04:05.000000Z"

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// SecretID filters entries by secret id.
	SecretID string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries on or after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries on or before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the local audit log.
//
// Returns ErrValidation if a date filter is not in YYYY-MM-DD format.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	var since, until time.Time
	if opts.Since != "" {
		t, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrValidation)
		}
		since = t
	}
	if opts.Until != "" {
		t, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrValidation)
		}
		// Include the entire day.
		until = t.Add(24*time.Hour - time.Nanosecond)
	}

	entries, err := audit.ReadEntries()
	if err != nil {
		return nil, fmt.Errorf("%w: reading audit log: %v", kerrors.ErrFileSystem, err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	var ops map[string]bool
	if opts.Operations != "" {
		ops = make(map[string]bool)
		for _, op := range strings.Split(opts.Operations, ",") {
			ops[strings.ToLower(strings.TrimSpace(op))] = true
		}
	}

	var filtered []audit.Entry
	for _, e := range entries {
		if opts.SecretID != "" && e.SecretID != opts.SecretID {
			continue
		}
		if ops != nil && !ops[strings.ToLower(e.Operation)] {
			continue
		}
		if !since.IsZero() || !until.IsZero() {
			ts, ok := parseTimestamp(e.Timestamp)
			if !ok {
				continue
			}
			if !since.IsZero() && ts.Before(since) {
				continue
			}
			if !until.IsZero() && ts.After(until) {
				continue
			}
		}
		filtered = append(filtered, e)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// Reversed: the first N are the most recent.
			filtered = filtered[:opts.Limit]
		} else {
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

func parseTimestamp(ts string) (time.Time, bool) {
	t, err := time.Parse(auditTimestampLayout, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err == nil
}

// FormatTimestamp renders an audit timestamp as "2006-01-02 15:04:05".
func FormatTimestamp(ts string) string {
	t, ok := parseTimestamp(ts)
	if !ok {
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}
