package dashboard

// Licensing model tags as the dashboard API reports them. Anything else
// is an unrecognized model and the pipeline skips the organization.
const (
	ModelCoTerm    = "co-term"
	ModelPerDevice = "per-device"
)

// Organization is one entry from GET /organizations.
type Organization struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Licensing Licensing `json:"licensing"`
}

// Licensing carries an organization's licensing model tag.
type Licensing struct {
	Model string `json:"model"`
}

// LicenseOverview is the coterminous licensing state of one organization:
// a single shared status and expiration covering every device. The
// expiration date arrives as "Oct 6, 2025 UTC".
type LicenseOverview struct {
	Status         string `json:"status"`
	ExpirationDate string `json:"expirationDate"`
}

// License is one per-device license entry. ExpirationDate is ISO-8601
// UTC when present and empty for licenses that have not been activated.
// DurationInDays is nil when the provider reports no duration.
type License struct {
	LicenseType    string `json:"licenseType"`
	State          string `json:"state"`
	ExpirationDate string `json:"expirationDate"`
	DurationInDays *int   `json:"durationInDays"`
	DeviceSerial   string `json:"deviceSerial"`
	NetworkID      string `json:"networkId"`
}

// Network is the slice of GET /networks/{id} the reporter cares about.
type Network struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
