// Command samplegen writes the demonstration workbook to disk, for trying
// the extraction front-end without a spreadsheet at hand.
package main

import (
	"flag"
	"log"

	"sheetscope/adapters/excel"
)

func main() {
	out := flag.String("o", "sample_data.xlsx", "output path for the sample workbook")
	flag.Parse()

	if err := excel.WriteSampleWorkbook(*out); err != nil {
		log.Fatalf("failed to write sample workbook: %v", err)
	}
	log.Printf("sample workbook written to %s", *out)
}
