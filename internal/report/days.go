package report

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// timestampLayout is the co-term expiration form the provider
	// reports, e.g. "Oct 6, 2025 UTC".
	timestampLayout = "Jan 2, 2006 MST"

	// displayLayout is the human-facing expiration form, e.g.
	// "Oct 6, 2025". Sorting parses it back with the same layout.
	displayLayout = "Jan 2, 2006"
)

// DaysRemaining returns the whole days between now and the expiration
// timestamp as a decimal string. A count of zero or less means the
// license has already lapsed and yields NA; negative remaining time is
// never surfaced. A timestamp the provider contract does not allow is
// an error and aborts the run.
func DaysRemaining(expiration string, now time.Time) (string, error) {
	target, err := time.Parse(timestampLayout, expiration)
	if err != nil {
		return "", fmt.Errorf("report: parse expiration %q: %w", expiration, err)
	}
	days := int(target.Sub(now).Hours() / 24)
	if days <= 0 {
		return NA, nil
	}
	return strconv.Itoa(days), nil
}
