package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kingrea/licwatch/internal/dashboard"
)

type stubResolver struct {
	names map[string]string
	calls int
	err   error
}

func (r *stubResolver) NetworkName(_ context.Context, networkID string) (string, error) {
	r.calls++
	if r.err != nil {
		return "", r.err
	}
	return r.names[networkID], nil
}

func intPtr(v int) *int { return &v }

func TestNormalizeCoTerm(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	overview := dashboard.LicenseOverview{Status: "OK", ExpirationDate: "Oct 6, 2025 UTC"}
	rec, err := NormalizeCoTerm("Acme Corp", "org-1", overview, now)
	if err != nil {
		t.Fatalf("NormalizeCoTerm returned error: %v", err)
	}
	if rec.OrgName != "Acme Corp" || rec.OrgID != "org-1" {
		t.Fatalf("unexpected identity fields: %+v", rec)
	}
	if rec.LicenseStatus != "OK" {
		t.Fatalf("expected status OK, got %q", rec.LicenseStatus)
	}
	if rec.LicenseExpiration != "Oct 6, 2025" {
		t.Fatalf("expected timezone token stripped, got %q", rec.LicenseExpiration)
	}
	if rec.DaysRemaining != "5" {
		t.Fatalf("expected 5 days remaining, got %q", rec.DaysRemaining)
	}
}

func TestNormalizeCoTermLapsed(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	overview := dashboard.LicenseOverview{Status: "License Expired", ExpirationDate: "Sep 1, 2024 UTC"}
	rec, err := NormalizeCoTerm("Acme Corp", "org-1", overview, now)
	if err != nil {
		t.Fatalf("NormalizeCoTerm returned error: %v", err)
	}
	if rec.LicenseExpiration != "Sep 1, 2024" {
		t.Fatalf("expected display date kept for lapsed license, got %q", rec.LicenseExpiration)
	}
	if rec.DaysRemaining != NA {
		t.Fatalf("expected NA days for lapsed license, got %q", rec.DaysRemaining)
	}
}

func TestNormalizeCoTermMalformed(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	overview := dashboard.LicenseOverview{Status: "OK", ExpirationDate: "not a date"}
	if _, err := NormalizeCoTerm("Acme Corp", "org-1", overview, now); err == nil {
		t.Fatalf("expected error for malformed expiration, got none")
	}
}

func TestNormalizePerDevice(t *testing.T) {
	resolver := &stubResolver{names: map[string]string{"N_1": "Main Office"}}
	licenses := []dashboard.License{
		{
			LicenseType:    "MX68",
			State:          "active",
			ExpirationDate: "2025-10-06T00:00:00Z",
			DurationInDays: intPtr(120),
			DeviceSerial:   "Q2XX-AAAA-BBBB",
			NetworkID:      "N_1",
		},
		{
			LicenseType: "MR36",
			State:       "unused",
		},
	}
	records, err := NormalizePerDevice(context.Background(), "Acme Corp", "org-1", licenses, resolver)
	if err != nil {
		t.Fatalf("NormalizePerDevice returned error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected one record per license, got %d", len(records))
	}

	active := records[0]
	if active.LicenseExpiration != "Oct 6, 2025" {
		t.Fatalf("expected reformatted expiration, got %q", active.LicenseExpiration)
	}
	if active.DaysRemaining != "120" {
		t.Fatalf("expected provider duration verbatim, got %q", active.DaysRemaining)
	}
	if active.DeviceSerial != "Q2XX-AAAA-BBBB" {
		t.Fatalf("unexpected device serial %q", active.DeviceSerial)
	}
	if active.NetworkName != "Main Office" {
		t.Fatalf("expected resolved network name, got %q", active.NetworkName)
	}

	unused := records[1]
	for field, got := range map[string]string{
		"expiration": unused.LicenseExpiration,
		"days":       unused.DaysRemaining,
		"device":     unused.DeviceSerial,
		"network":    unused.NetworkName,
	} {
		if got != NA {
			t.Fatalf("expected %s to default to NA, got %q", field, got)
		}
	}
	if resolver.calls != 1 {
		t.Fatalf("expected a single network lookup, got %d", resolver.calls)
	}
}

func TestNormalizePerDeviceDurationVerbatim(t *testing.T) {
	resolver := &stubResolver{names: map[string]string{}}
	tests := []struct {
		name     string
		duration *int
		want     string
	}{
		{name: "negative duration kept", duration: intPtr(-30), want: "-30"},
		{name: "zero duration kept", duration: intPtr(0), want: "0"},
		{name: "missing duration", duration: nil, want: NA},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			licenses := []dashboard.License{{
				LicenseType:    "MS120",
				State:          "expired",
				ExpirationDate: "2024-09-01T00:00:00Z",
				DurationInDays: tt.duration,
			}}
			records, err := NormalizePerDevice(context.Background(), "Acme Corp", "org-1", licenses, resolver)
			if err != nil {
				t.Fatalf("NormalizePerDevice returned error: %v", err)
			}
			if records[0].DaysRemaining != tt.want {
				t.Fatalf("expected days %q, got %q", tt.want, records[0].DaysRemaining)
			}
		})
	}
}

func TestNormalizePerDeviceEmptyAssociations(t *testing.T) {
	resolver := &stubResolver{names: map[string]string{}}
	licenses := []dashboard.License{{
		LicenseType:    "MV12",
		State:          "active",
		ExpirationDate: "2025-10-06T00:00:00Z",
		DurationInDays: intPtr(90),
	}}
	records, err := NormalizePerDevice(context.Background(), "Acme Corp", "org-1", licenses, resolver)
	if err != nil {
		t.Fatalf("NormalizePerDevice returned error: %v", err)
	}
	if records[0].DeviceSerial != NA {
		t.Fatalf("expected NA serial for unattached license, got %q", records[0].DeviceSerial)
	}
	if records[0].NetworkName != NA {
		t.Fatalf("expected NA network for unattached license, got %q", records[0].NetworkName)
	}
	if resolver.calls != 0 {
		t.Fatalf("expected no network lookup for empty network id, got %d", resolver.calls)
	}
}

func TestNormalizePerDeviceResolverError(t *testing.T) {
	resolver := &stubResolver{err: errors.New("boom")}
	licenses := []dashboard.License{{
		LicenseType:    "MX68",
		State:          "active",
		ExpirationDate: "2025-10-06T00:00:00Z",
		NetworkID:      "N_1",
	}}
	if _, err := NormalizePerDevice(context.Background(), "Acme Corp", "org-1", licenses, resolver); err == nil {
		t.Fatalf("expected resolver failure to propagate, got none")
	}
}

func TestNormalizePerDeviceMalformedExpiration(t *testing.T) {
	resolver := &stubResolver{}
	licenses := []dashboard.License{{
		LicenseType:    "MX68",
		State:          "active",
		ExpirationDate: "Oct 6, 2025",
	}}
	if _, err := NormalizePerDevice(context.Background(), "Acme Corp", "org-1", licenses, resolver); err == nil {
		t.Fatalf("expected error for malformed expiration, got none")
	}
}

func TestNormalizePerDeviceEmptyList(t *testing.T) {
	records, err := NormalizePerDevice(context.Background(), "Acme Corp", "org-1", nil, &stubResolver{})
	if err != nil {
		t.Fatalf("NormalizePerDevice returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records for an empty license list, got %d", len(records))
	}
}
