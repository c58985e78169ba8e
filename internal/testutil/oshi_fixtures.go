package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// OshiOptions contains options for generating one record of the data file.
// Empty fields are filled with plausible defaults.
type OshiOptions struct {
	OrderID   int
	NameEN    string
	NameJP    string
	OrgEN     string
	OrgJP     string
	Mark      string
	StartDate string
}

// oshiRecord mirrors the on-disk field names independently of the models package,
// so fixtures keep testing the real wire format
type oshiRecord struct {
	OrderID   int    `json:"order_id"`
	NameEN    string `json:"oshi_name_en"`
	NameJP    string `json:"oshi_name_jp"`
	OrgEN     string `json:"oshi_org_en"`
	OrgJP     string `json:"oshi_org_jp"`
	Mark      string `json:"oshi_mark"`
	StartDate string `json:"oshi_start_date"`
}

// GenerateOshiJSON generates a data document containing the given records in order
func GenerateOshiJSON(rows []OshiOptions) string {
	records := make([]oshiRecord, 0, len(rows))
	for i, row := range rows {
		if row.OrderID == 0 {
			row.OrderID = i + 1
		}
		if row.NameEN == "" {
			row.NameEN = "Hoshimachi Suisei"
		}
		if row.NameJP == "" {
			row.NameJP = "星街すいせい"
		}
		if row.OrgEN == "" {
			row.OrgEN = "hololive"
		}
		if row.OrgJP == "" {
			row.OrgJP = "ホロライブ"
		}
		if row.Mark == "" {
			row.Mark = "☄️"
		}
		if row.StartDate == "" {
			row.StartDate = "2019-03-22"
		}
		records = append(records, oshiRecord(row))
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(data)
}

// WriteDataFile writes content to oshikatsu.json inside a fresh temporary directory
// and returns its path
func WriteDataFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oshikatsu.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write data file: %v", err)
	}
	return path
}

// FixedClock returns a clock that always reports the given instant
func FixedClock(now time.Time) func() time.Time {
	return func() time.Time {
		return now
	}
}

// DateBefore formats the calendar date n days before now as YYYY-MM-DD
func DateBefore(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format("2006-01-02")
}
