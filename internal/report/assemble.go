package report

// Sheet is one tab of the final workbook: a name, a header row, and the
// data rows already in final order.
type Sheet struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// Report is the ordered sheet list handed to the spreadsheet encoder.
type Report struct {
	Sheets []Sheet
}

// CoTermSheetName names the sheet holding every coterminous record.
const CoTermSheetName = "Co-term Customers"

// Column layouts, in the exact order they appear in the artifact.
var (
	coTermColumns = []string{
		"Org. Name", "Org. ID", "License Status", "License Expiration", "Days Remaining",
	}
	deviceColumns = []string{
		"Org. Name", "Org. ID", "License Type", "License Status",
		"License Expiration", "Days Remaining", "Associated Device", "Associated Network",
	}
)

// Assemble lays out the sorted buckets as sheets: the co-term sheet
// first, then one sheet per per-device organization in encounter order,
// each named after the organization. Every sheet carries its header row
// even with zero data rows, so an organization that owns no licenses
// still shows up in the workbook.
func Assemble(coterm []CoTermRecord, perDevice []OrgLicenses) Report {
	sheets := make([]Sheet, 0, 1+len(perDevice))

	cotermRows := make([][]string, 0, len(coterm))
	for _, rec := range coterm {
		cotermRows = append(cotermRows, []string{
			rec.OrgName, rec.OrgID, rec.LicenseStatus, rec.LicenseExpiration, rec.DaysRemaining,
		})
	}
	sheets = append(sheets, Sheet{Name: CoTermSheetName, Columns: coTermColumns, Rows: cotermRows})

	for _, org := range perDevice {
		rows := make([][]string, 0, len(org.Records))
		for _, rec := range org.Records {
			rows = append(rows, []string{
				rec.OrgName, rec.OrgID, rec.LicenseType, rec.LicenseStatus,
				rec.LicenseExpiration, rec.DaysRemaining, rec.DeviceSerial, rec.NetworkName,
			})
		}
		sheets = append(sheets, Sheet{Name: org.OrgName, Columns: deviceColumns, Rows: rows})
	}
	return Report{Sheets: sheets}
}
