// Package docfmt converts, formats and highlights JSON, XML, CSV and YAML
// documents.
//
// Every format is read into a [Value], an ordered tree of mappings, lists
// and scalars. [Parse] and [Write] move between text and that tree, and
// [Convert] chains them for the supported [Pairs]:
//
//	out, err := docfmt.Convert(`[{"a":"1"}]`, docfmt.Pair{From: docfmt.JSON, To: docfmt.CSV})
//
// Conversions go through JSON on one side. Any other pair fails with an
// [*UnsupportedConversionError] before the input is read.
//
// # Formatting
//
// [FormatJSON] and [MinifyJSON] re-serialize JSON with the indentation and
// key order in [Options]. [FormatXML] and [MinifyXML] are textual: they
// re-indent the markup without building a tree.
//
// # Validation
//
// [Validate] and the per-format validators report a [Validation] instead
// of an error. Malformed input elsewhere surfaces as a [*ParseError]
// carrying the line, column and a snippet of the offending line.
//
// # Highlighting
//
// [Highlight] wraps the tokens of serialized JSON or XML through a
// [Markup]: [HTMLMarkup] emits <span> elements with json-* and xml-*
// classes, [NewColorMarkup] emits ANSI colors. [Render] prints a Value
// through the same markups.
//
// # YAML
//
// The YAML converter reads and writes a subset: block mappings nested by
// indentation, "- " list items and plain or quoted scalars. All scalars are
// read as strings except null and ~. [ValidateYAML] accepts the full YAML
// grammar.
package docfmt
