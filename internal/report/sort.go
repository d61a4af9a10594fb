package report

import (
	"fmt"
	"sort"
	"time"
)

// sortMax stands in for NA so records without a resolvable expiration
// sort after every record with one.
var sortMax = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

// SortCoTerm orders the co-term bucket in place by soonest expiration
// first. NA expirations sort last; ties keep their input order. A
// display value that is neither NA nor a parsable date is an error.
func SortCoTerm(records []CoTermRecord) error {
	keys := make([]time.Time, len(records))
	for i, rec := range records {
		key, err := expirationKey(rec.LicenseExpiration)
		if err != nil {
			return err
		}
		keys[i] = key
	}
	reorder(len(records), keys, func(perm []int) {
		ordered := make([]CoTermRecord, len(records))
		for i, j := range perm {
			ordered[i] = records[j]
		}
		copy(records, ordered)
	})
	return nil
}

// SortDevices orders one organization's per-device records in place,
// with the same key and tie rules as SortCoTerm.
func SortDevices(records []DeviceRecord) error {
	keys := make([]time.Time, len(records))
	for i, rec := range records {
		key, err := expirationKey(rec.LicenseExpiration)
		if err != nil {
			return err
		}
		keys[i] = key
	}
	reorder(len(records), keys, func(perm []int) {
		ordered := make([]DeviceRecord, len(records))
		for i, j := range perm {
			ordered[i] = records[j]
		}
		copy(records, ordered)
	})
	return nil
}

// expirationKey parses a display expiration back into its sort key.
func expirationKey(display string) (time.Time, error) {
	if display == NA {
		return sortMax, nil
	}
	key, err := time.Parse(displayLayout, display)
	if err != nil {
		return time.Time{}, fmt.Errorf("report: parse expiration display %q: %w", display, err)
	}
	return key, nil
}

// reorder computes the stable permutation that sorts keys ascending and
// hands it to apply, which moves the records accordingly.
func reorder(n int, keys []time.Time, apply func(perm []int)) {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return keys[perm[a]].Before(keys[perm[b]])
	})
	apply(perm)
}
