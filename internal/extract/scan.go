// Package extract holds the pure text and aggregation logic applied to the
// extraction tool's output. Nothing in here touches the filesystem, the
// network or the subprocess layer, so all of it is unit-testable with
// literal strings.
package extract

import (
	"strings"

	"sheetscope/models"
)

const (
	// separatorMarker prefixes the banner lines the tool prints between blocks.
	separatorMarker = "==="
	// sheetMarker and columnMarker tag lines with the sheet / column header
	// a data point came from. Part of the tool's output contract.
	sheetMarker  = "sheet:"
	columnMarker = "c_header:"
)

// ScanOutput walks the query output line by line and builds the row count
// plus the deduplicated sheet and column-header name lists. Names keep
// first-occurrence order. The function is total: any input, including the
// empty string, produces a valid Scan.
func ScanOutput(output string) models.Scan {
	sc := models.Scan{
		Sheets:  []string{},
		Columns: []string{},
	}

	seenSheets := make(map[string]bool)
	seenColumns := make(map[string]bool)

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, separatorMarker) {
			continue
		}
		sc.TotalRows++

		if name, ok := markerToken(line, sheetMarker); ok && !seenSheets[name] {
			seenSheets[name] = true
			sc.Sheets = append(sc.Sheets, name)
		}
		if name, ok := markerToken(line, columnMarker); ok && !seenColumns[name] {
			seenColumns[name] = true
			sc.Columns = append(sc.Columns, name)
		}
	}

	return sc
}

// markerToken returns the first whitespace-separated token after the last
// occurrence of marker in line. A marker with nothing after it yields ok=false;
// the line still counts as a row, it just names nothing.
func markerToken(line, marker string) (string, bool) {
	idx := strings.LastIndex(line, marker)
	if idx < 0 {
		return "", false
	}
	fields := strings.Fields(line[idx+len(marker):])
	if len(fields) == 0 {
		return "", false
	}
	return fields[0], true
}
