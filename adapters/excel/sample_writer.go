// Package excel builds the demonstration workbook offered for download so
// the tool can be tried without hunting for a spreadsheet.
package excel

import (
	"io"

	"github.com/xuri/excelize/v2"

	"sheetscope/internal/errors"
)

// SampleSheets names the sheets the sample workbook contains, in order.
var SampleSheets = []string{"Employees", "Sales", "Financial"}

var employeeRows = [][]interface{}{
	{"Name", "Age", "City", "Salary", "Department"},
	{"Alice Johnson", 25, "New York", 75000, "Engineering"},
	{"Bob Smith", 30, "Los Angeles", 85000, "Marketing"},
	{"Charlie Brown", 35, "Chicago", 90000, "Sales"},
	{"Diana Prince", 28, "Boston", 80000, "HR"},
	{"Eve Wilson", 32, "Seattle", 95000, "Engineering"},
}

var salesRows = [][]interface{}{
	{"Product", "Q1_Sales", "Q2_Sales", "Q3_Sales", "Q4_Sales"},
	{"Laptop", 120, 135, 110, 125},
	{"Phone", 200, 180, 220, 190},
	{"Tablet", 85, 95, 90, 100},
	{"Monitor", 45, 50, 40, 55},
	{"Keyboard", 60, 65, 70, 75},
}

var financialRows = [][]interface{}{
	{"Month", "Revenue", "Expenses", "Profit"},
	{"Jan", 50000, 40000, 10000},
	{"Feb", 55000, 42000, 13000},
	{"Mar", 60000, 45000, 15000},
	{"Apr", 65000, 48000, 17000},
	{"May", 70000, 50000, 20000},
	{"Jun", 75000, 52000, 23000},
}

// BuildSampleWorkbook assembles the workbook in memory. Callers own closing it.
func BuildSampleWorkbook() (*excelize.File, error) {
	f := excelize.NewFile()

	sheets := map[string][][]interface{}{
		"Employees": employeeRows,
		"Sales":     salesRows,
		"Financial": financialRows,
	}

	for i, name := range SampleSheets {
		if i == 0 {
			// Rename the default sheet rather than leaving it empty.
			if err := f.SetSheetName("Sheet1", name); err != nil {
				return nil, errors.Wrapf(err, "failed to rename sheet to %s", name)
			}
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, errors.Wrapf(err, "failed to create sheet %s", name)
			}
		}
		for rowIdx, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, rowIdx+1)
			if err != nil {
				return nil, errors.Wrap(err, "failed to compute cell name")
			}
			if err := f.SetSheetRow(name, cell, &row); err != nil {
				return nil, errors.Wrapf(err, "failed to write row %d of %s", rowIdx+1, name)
			}
		}
	}

	return f, nil
}

// WriteSampleWorkbook writes the sample workbook to a file on disk.
func WriteSampleWorkbook(path string) error {
	f, err := BuildSampleWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "failed to save sample workbook to %s", path)
	}
	return nil
}

// StreamSampleWorkbook writes the sample workbook to w, for HTTP downloads.
func StreamSampleWorkbook(w io.Writer) error {
	f, err := BuildSampleWorkbook()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "failed to stream sample workbook")
	}
	return nil
}
