package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanOutputRowCount(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		wantRows int
	}{
		{
			name:     "empty input",
			output:   "",
			wantRows: 0,
		},
		{
			name:     "plain lines",
			output:   "a\nb\nc",
			wantRows: 3,
		},
		{
			name:     "blank and whitespace lines are skipped",
			output:   "a\n\n   \nb\n",
			wantRows: 2,
		},
		{
			name:     "separator banners are skipped",
			output:   "=== block one ===\nrow\n====\nrow",
			wantRows: 2,
		},
		{
			name:     "indented separator still counts",
			output:   "  === not a banner",
			wantRows: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := ScanOutput(tt.output)
			assert.Equal(t, tt.wantRows, sc.TotalRows)
		})
	}
}

func TestScanOutputSheets(t *testing.T) {
	tests := []struct {
		name       string
		output     string
		wantSheets []string
	}{
		{
			name:       "dedup keeps first occurrence order",
			output:     "x sheet:A\ny sheet:B\nz sheet:A",
			wantSheets: []string{"A", "B"},
		},
		{
			name:       "token ends at whitespace",
			output:     "row=1 sheet:Employees c_header:Name",
			wantSheets: []string{"Employees"},
		},
		{
			name:       "last marker occurrence wins",
			output:     "sheet:First sheet:Second rest",
			wantSheets: []string{"Second"},
		},
		{
			name:       "marker with no token names nothing",
			output:     "dangling sheet:",
			wantSheets: []string{},
		},
		{
			name:       "no markers",
			output:     "just a row",
			wantSheets: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := ScanOutput(tt.output)
			assert.Equal(t, tt.wantSheets, sc.Sheets)
		})
	}
}

func TestScanOutputColumns(t *testing.T) {
	out := "r1 sheet:S c_header:Name\nr2 sheet:S c_header:Age\nr3 sheet:S c_header:Name"
	sc := ScanOutput(out)

	assert.Equal(t, 3, sc.TotalRows)
	assert.Equal(t, []string{"S"}, sc.Sheets)
	assert.Equal(t, []string{"Name", "Age"}, sc.Columns)
}

func TestScanOutputDanglingMarkerStillCountsRow(t *testing.T) {
	sc := ScanOutput("good sheet:A\nbad sheet:")
	assert.Equal(t, 2, sc.TotalRows)
	assert.Equal(t, []string{"A"}, sc.Sheets)
}

func TestScanOutputIsDeterministic(t *testing.T) {
	out := "a sheet:X c_header:C1\n===\nb sheet:Y c_header:C2"
	first := ScanOutput(out)
	second := ScanOutput(out)
	assert.Equal(t, first, second)
}
