// Package io reads influencer spreadsheets and writes generated decks.
//
// # Import
//
// Two tabular input formats are supported, chosen by file extension:
//
//   - .csv: a header row followed by one row per influencer
//   - .xlsx: the first worksheet, whose first row is the header
//
// Use [ReadTable] to get the raw header and rows of a file, or
// [ImportRecords] to read and validate in one step:
//
//	recs, err := io.ImportRecords("influencers.xlsx")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Validation failures are reported as *errors.FieldError naming the record
// and column; see package record for the column contract.
//
// Rows in which every cell is blank are dropped; spreadsheets commonly carry
// trailing empty rows.
//
// # Export
//
// Use [ExportPPTX] to write a deck to a .pptx file, or [WritePPTX] to write to
// any io.Writer.
package io
