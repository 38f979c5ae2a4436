// Package tabconv serializes tabular records, rows of field name to value
// mappings, into CSV and JSON.
//
// Values are classified into a closed set of kinds (see KindOf): decimals and
// date-like values are written as text, collections as lists and everything
// else as plain JSON values. Scalar coercion of record values lives in the
// conv package.
//
// Usage:
//
//	records := tabconv.Records{{"id": 1, "price": decimal.RequireFromString("1.50")}}
//	reader, err := tabconv.RecordsToCSV(records, []string{"id", "price"}, tabconv.WithBOM(true))
//	...
//	reader, err = tabconv.RecordsToJSON(records, tabconv.WithCaseFormat(text.CaseFormatUpperCamel))
package tabconv
