// Package deck provides an in-memory model of a presentation document.
//
// # Overview
//
// A [Document] is an ordered, append-only list of [Slide] values plus a few
// document properties. Each slide owns the elements placed on it, in
// insertion order:
//
//   - [Table]: a fixed rows x cols grid of text cells with column widths
//   - [Chart]: a pie or clustered column chart with one series
//   - [TextBox]: one or more styled text runs
//   - [Picture]: raw image bytes with a MIME type
//
// The model carries no file-format knowledge. Encoders (see package pptx)
// walk the document once and translate each element into the target format.
//
// # Geometry
//
// All positions and sizes are expressed in [EMU], the English Metric Unit used
// by Office Open XML. [Cm] and [Px] convert from centimetres and 96 dpi
// pixels:
//
//	r := deck.Rect{X: deck.Cm(0.81), Y: deck.Cm(2), W: deck.Cm(11), H: deck.Cm(2.73)}
//
// # Lifecycle
//
// Tables are filled cell by cell, then optionally normalized to a single font
// size with [Table.NormalizeFont]. Charts are immutable once added: the
// slide stores its own copy of the categories and values passed to
// [NewChart].
package deck
