package report

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kingrea/licwatch/internal/dashboard"
)

// NetworkResolver resolves a network id to its display name. The
// dashboard client satisfies it; tests substitute fakes.
type NetworkResolver interface {
	NetworkName(ctx context.Context, networkID string) (string, error)
}

// NormalizeCoTerm flattens one organization's coterminous licensing
// overview into a single reporting row. The display expiration drops
// the trailing timezone token ("Oct 6, 2025 UTC" becomes "Oct 6, 2025")
// while the day count is computed from the original timestamp.
func NormalizeCoTerm(orgName, orgID string, overview dashboard.LicenseOverview, now time.Time) (CoTermRecord, error) {
	days, err := DaysRemaining(overview.ExpirationDate, now)
	if err != nil {
		return CoTermRecord{}, err
	}
	return CoTermRecord{
		OrgName:           orgName,
		OrgID:             orgID,
		LicenseStatus:     overview.Status,
		LicenseExpiration: trimZone(overview.ExpirationDate),
		DaysRemaining:     days,
	}, nil
}

// NormalizePerDevice turns an organization's per-device license list
// into one record per license. Entries without an expiration date stay
// at their NA defaults and never trigger a network lookup; entries with
// one carry the provider-reported duration verbatim and resolve their
// network id to a display name.
func NormalizePerDevice(ctx context.Context, orgName, orgID string, licenses []dashboard.License, networks NetworkResolver) ([]DeviceRecord, error) {
	records := make([]DeviceRecord, 0, len(licenses))
	for _, lic := range licenses {
		rec := DeviceRecord{
			OrgName:           orgName,
			OrgID:             orgID,
			LicenseType:       lic.LicenseType,
			LicenseStatus:     lic.State,
			LicenseExpiration: NA,
			DaysRemaining:     NA,
			DeviceSerial:      NA,
			NetworkName:       NA,
		}
		if lic.ExpirationDate != "" {
			expires, err := time.Parse(time.RFC3339, lic.ExpirationDate)
			if err != nil {
				return nil, fmt.Errorf("report: parse license expiration %q: %w", lic.ExpirationDate, err)
			}
			rec.LicenseExpiration = expires.UTC().Format(displayLayout)
			if lic.DurationInDays != nil {
				rec.DaysRemaining = strconv.Itoa(*lic.DurationInDays)
			}
			if lic.DeviceSerial != "" {
				rec.DeviceSerial = lic.DeviceSerial
			}
			if lic.NetworkID != "" {
				name, err := networks.NetworkName(ctx, lic.NetworkID)
				if err != nil {
					return nil, fmt.Errorf("report: resolve network %s: %w", lic.NetworkID, err)
				}
				rec.NetworkName = name
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// trimZone drops the trailing timezone token and surrounding whitespace
// from a provider timestamp.
func trimZone(timestamp string) string {
	trimmed := strings.TrimSpace(timestamp)
	if i := strings.LastIndexByte(trimmed, ' '); i >= 0 {
		return strings.TrimSpace(trimmed[:i])
	}
	return trimmed
}
