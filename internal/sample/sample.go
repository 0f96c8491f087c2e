// Package sample embeds a demonstration record set so the dashboard works
// without any external data.
package sample

import (
	_ "embed"
	"fmt"
	"time"

	"github.com/alexanderramin/rfpwatch/internal/domain"
	"github.com/alexanderramin/rfpwatch/internal/importer"
)

//go:embed records.json
var recordsJSON []byte

// SourceName identifies the embedded set in responses and logs.
const SourceName = "sample"

// RefDate is the date the sample set was written against. Passing it as
// "now" reproduces the intended mix of due, overdue and upcoming RFPs.
var RefDate = time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

// Records returns a fresh copy of the sample records on every call.
func Records() ([]domain.Record, error) {
	f, err := importer.Parse(recordsJSON, importer.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("parsing embedded sample: %w", err)
	}
	return importer.Convert(f), nil
}

// Raw returns the embedded record file bytes.
func Raw() []byte {
	out := make([]byte, len(recordsJSON))
	copy(out, recordsJSON)
	return out
}
