// Package table holds the derived-table representation shared by the report
// builders, the CSV writer and the SQLite sink.
package table

import (
	"strconv"
)

// Table is a derived table: an ordered header and string-formatted rows.
// Builders construct a table once; nothing mutates it afterwards.
type Table struct {
	Header []string
	Rows   [][]string
}

// New returns an empty table with the given header.
func New(header ...string) *Table {
	return &Table{Header: header}
}

// Append adds one row. The caller is responsible for matching the header
// width; WriteCSV rejects mismatched rows.
func (t *Table) Append(row ...string) {
	t.Rows = append(t.Rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Int formats a count column.
func Int(n int) string {
	return strconv.Itoa(n)
}

// Points formats a points total the way the source data carries it: whole
// numbers without a decimal point, half points as "412.5".
func Points(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Average formats a computed mean with two decimals so reruns are
// byte-identical.
func Average(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
