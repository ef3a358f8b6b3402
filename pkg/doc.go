// Package pkg provides the libraries behind influencerdeck.
//
// # Overview
//
// Influencerdeck turns a spreadsheet of influencer audience metrics into a
// PowerPoint deck, one slide per row. The pkg directory is organized as:
//
//  1. [record] - Column contract and load-time validation of input rows
//  2. [deck] - In-memory document model (tables, charts, text boxes, pictures)
//  3. [slides] - Slide builder placing one record's content on one slide
//  4. [pptx] - PPTX encoding of the document model
//  5. [io] - CSV/XLSX import and PPTX export
//  6. [pipeline] - Orchestration (load → build → persist)
//
// Supporting packages: [imagefetch] downloads profile pictures, [cache]
// stores them on disk, [config] reads TOML settings, [errors] carries coded
// and per-field errors, [observability] exposes hooks.
//
// # Architecture
//
// The typical data flow:
//
//	CSV / XLSX file
//	       ↓
//	  [io] package (read header + rows)
//	       ↓
//	  [record] package (typed, validated Influencer values)
//	       ↓
//	  [slides] package (one slide per record on a [deck] Document)
//	       ↓
//	  [pptx] package (encode) → .pptx file
//
// # Quick Start
//
//	err := pipeline.Convert(ctx, "influencers.xlsx", "report.pptx")
//
// For control over fonts, image timeouts and caching, build
// [pipeline.Options] and call [pipeline.Runner.Execute].
package pkg
