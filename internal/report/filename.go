package report

import (
	"fmt"
	"time"
)

// ArtifactName returns the dated workbook file name for a run, e.g.
// "license_report_10-01-2025.xlsx". The name carries the calendar date
// only, so two runs on the same day overwrite each other.
func ArtifactName(now time.Time) string {
	return fmt.Sprintf("license_report_%s.xlsx", now.Format("01-02-2006"))
}
