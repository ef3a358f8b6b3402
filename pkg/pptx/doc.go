// Package pptx writes [deck.Document] values as PowerPoint files using GoPPT.
//
// [Encode] translates each deck element into the matching GoPPT shape:
// tables into table shapes, charts into chart shapes, text boxes into rich
// text shapes and pictures into drawing shapes. The deck model stays free of
// GoPPT types; all GoPPT calls live in this package.
//
// GoPPT gives every table equal columns, so Encode patches the table grids
// of the written package with the widths from [deck.Table.ColumnWidths].
//
// Only the point size of a table cell run reaches the file: the GoPPT table
// writer drops bold, color and font name on cell text.
package pptx
