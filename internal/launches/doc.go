// Package launches loads the launch-records dataset into an immutable Table.
//
// Parse(r) reads a CSV whose header names the columns:
//   - "Launch Site"              — launch site name (required)
//   - "Payload Mass (kg)"        — payload mass, float (required)
//   - "class"                    — outcome, 0 = failure, 1 = success (required)
//   - "Booster Version Category" — booster family (required)
//   - "Flight Number", "Booster Version" — optional, carried when present
//
// Columns are matched by trimmed header name; unknown columns (such as the
// unnamed pandas index) are ignored. Load(path) reads the file and calls Parse.
//
// Every failure is fatal to the caller: missing columns, unparseable cells,
// class values outside {0,1}, and a header-only file (ErrEmptyTable), since
// the payload bounds of an empty table are undefined.
//
// A Table is never modified after Parse returns. Records returns a copy, so
// callers can filter and sort freely.
package launches
