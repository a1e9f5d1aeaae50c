package checks

import (
	"release-sync/feature/catalog"
)

// RecordIssue is a product record that could not be parsed.
type RecordIssue struct {
	Product string `json:"product"`
	Error   string `json:"error"`
}

// RecordsReport is the outcome of CheckRecords.
type RecordsReport struct {
	Products int           `json:"products"`
	Cycles   int           `json:"cycles"`
	Invalid  []RecordIssue `json:"invalid"`
}

// CheckRecords parses every product record in dir.
func CheckRecords(dir string) (*RecordsReport, error) {
	names, err := catalog.List(dir)
	if err != nil {
		return nil, err
	}
	report := &RecordsReport{Products: len(names), Invalid: []RecordIssue{}}
	for _, name := range names {
		record, err := catalog.Load(dir, name)
		if err != nil {
			report.Invalid = append(report.Invalid, RecordIssue{Product: name, Error: err.Error()})
			continue
		}
		report.Cycles += len(record.Cycles())
	}
	return report, nil
}
