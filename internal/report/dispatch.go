package report

import (
	"context"
	"fmt"
	"time"

	"github.com/kingrea/licwatch/internal/dashboard"
	"github.com/kingrea/licwatch/internal/logging"
)

// Inventory is the slice of the dashboard API the dispatcher consumes:
// the co-term overview fetch, the fully paged per-device license list,
// and network name resolution.
type Inventory interface {
	LicenseOverview(ctx context.Context, orgID string) (dashboard.LicenseOverview, error)
	Licenses(ctx context.Context, orgID string) ([]dashboard.License, error)
	NetworkResolver
}

// ProgressSink receives pipeline progress: the organization total up
// front, one advance per organization processed, and a final End. A nil
// sink is valid and means no progress reporting.
type ProgressSink interface {
	Begin(total int)
	Advance(orgName string)
	End()
}

// Dispatch walks the organization list once, routing each organization
// by its licensing model: co-term organizations contribute one record
// to the first bucket, per-device organizations one group of records to
// the second. Organizations with an unrecognized model are left out of
// both buckets. Any fetch or normalization failure aborts the walk, so
// a partial report is never assembled.
func Dispatch(ctx context.Context, orgs []dashboard.Organization, inv Inventory, now time.Time, sink ProgressSink) ([]CoTermRecord, []OrgLicenses, error) {
	var coterm []CoTermRecord
	var perDevice []OrgLicenses

	if sink != nil {
		sink.Begin(len(orgs))
		defer sink.End()
	}
	for _, org := range orgs {
		switch org.Licensing.Model {
		case dashboard.ModelCoTerm:
			overview, err := inv.LicenseOverview(ctx, org.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("report: licensing overview for %s: %w", org.Name, err)
			}
			rec, err := NormalizeCoTerm(org.Name, org.ID, overview, now)
			if err != nil {
				return nil, nil, err
			}
			coterm = append(coterm, rec)
		case dashboard.ModelPerDevice:
			licenses, err := inv.Licenses(ctx, org.ID)
			if err != nil {
				return nil, nil, fmt.Errorf("report: licenses for %s: %w", org.Name, err)
			}
			records, err := NormalizePerDevice(ctx, org.Name, org.ID, licenses, inv)
			if err != nil {
				return nil, nil, err
			}
			perDevice = append(perDevice, OrgLicenses{OrgID: org.ID, OrgName: org.Name, Records: records})
		default:
			logging.L().Debugw("skipping organization with unrecognized licensing model",
				"org", org.Name, "model", org.Licensing.Model)
		}
		if sink != nil {
			sink.Advance(org.Name)
		}
	}
	return coterm, perDevice, nil
}
