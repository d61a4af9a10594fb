package report

// NA is the display sentinel for values that are unknown or do not
// apply: lapsed expirations, licenses without a device, and so on.
const NA = "N/A"

// CoTermRecord is one reporting row for an organization with
// coterminous licensing: a single shared status and expiration covering
// every device the organization owns.
type CoTermRecord struct {
	OrgName           string
	OrgID             string
	LicenseStatus     string
	LicenseExpiration string // "Oct 6, 2025" or NA
	DaysRemaining     string // positive day count or NA
}

// DeviceRecord is one reporting row for a single per-device license.
// DaysRemaining carries the provider-reported duration verbatim; unlike
// the co-term path it is not recomputed and not clamped at zero.
type DeviceRecord struct {
	OrgName           string
	OrgID             string
	LicenseType       string
	LicenseStatus     string
	LicenseExpiration string
	DaysRemaining     string
	DeviceSerial      string
	NetworkName       string
}

// OrgLicenses groups one per-device organization's records. The
// dispatcher emits these in organization encounter order, which later
// becomes sheet order.
type OrgLicenses struct {
	OrgID   string
	OrgName string
	Records []DeviceRecord
}
