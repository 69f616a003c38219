package launches

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// Column headers recognised in the dataset.
const (
	ColFlightNumber           = "Flight Number"
	ColLaunchSite             = "Launch Site"
	ColClass                  = "class"
	ColPayloadMass            = "Payload Mass (kg)"
	ColBoosterVersion         = "Booster Version"
	ColBoosterVersionCategory = "Booster Version Category"
)

var requiredColumns = []string{
	ColLaunchSite,
	ColPayloadMass,
	ColClass,
	ColBoosterVersionCategory,
}

var (
	// ErrMissingColumn is returned when a required column is absent from the header.
	ErrMissingColumn = errors.New("missing required column")

	// ErrEmptyTable is returned when the dataset has a header but no rows.
	ErrEmptyTable = errors.New("dataset has no rows")
)

// ParseError reports a cell that could not be converted to its column type.
type ParseError struct {
	Line   int // 1-based line in the CSV input
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d, column %q: invalid value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Record is one launch attempt.
type Record struct {
	FlightNumber           int     `json:"flight_number,omitempty"`
	LaunchSite             string  `json:"launch_site"`
	PayloadMassKg          float64 `json:"payload_mass_kg"`
	Class                  int     `json:"class"`
	BoosterVersion         string  `json:"booster_version,omitempty"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// Table is the immutable, ordered set of launch records together with the
// statistics derived from it at load time.
type Table struct {
	records    []Record
	sites      []string
	siteSet    map[string]struct{}
	minPayload float64
	maxPayload float64
}

// Load reads and parses the dataset at path.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("launches: open %q: %w", path, err)
	}
	defer f.Close()

	t, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("launches: %q: %w", path, err)
	}
	return t, nil
}

// Parse reads a launch-records CSV from r.
func Parse(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("read header: %w", ErrEmptyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	flightIdx, hasFlight := idx[ColFlightNumber]
	versionIdx, hasVersion := idx[ColBoosterVersion]

	var records []Record
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := reader.FieldPos(0)

		cell := func(col string) string {
			return strings.TrimSpace(row[idx[col]])
		}

		rec := Record{
			LaunchSite:             cell(ColLaunchSite),
			BoosterVersionCategory: cell(ColBoosterVersionCategory),
		}

		payload, err := strconv.ParseFloat(cell(ColPayloadMass), 64)
		if err == nil && (math.IsNaN(payload) || math.IsInf(payload, 0)) {
			err = errors.New("not a finite number")
		}
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColPayloadMass, Value: cell(ColPayloadMass), Err: err}
		}
		rec.PayloadMassKg = payload

		class, err := parseClass(cell(ColClass))
		if err != nil {
			return nil, &ParseError{Line: line, Column: ColClass, Value: cell(ColClass), Err: err}
		}
		rec.Class = class

		if hasFlight {
			raw := strings.TrimSpace(row[flightIdx])
			if raw != "" {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return nil, &ParseError{Line: line, Column: ColFlightNumber, Value: raw, Err: err}
				}
				rec.FlightNumber = n
			}
		}
		if hasVersion {
			rec.BoosterVersion = strings.TrimSpace(row[versionIdx])
		}

		records = append(records, rec)
	}

	return newTable(records)
}

// New builds a Table from records. The slice is copied.
func New(records []Record) (*Table, error) {
	return newTable(append([]Record(nil), records...))
}

func newTable(records []Record) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		records:    records,
		siteSet:    make(map[string]struct{}),
		minPayload: records[0].PayloadMassKg,
		maxPayload: records[0].PayloadMassKg,
	}
	for _, r := range records {
		if _, ok := t.siteSet[r.LaunchSite]; !ok {
			t.siteSet[r.LaunchSite] = struct{}{}
			t.sites = append(t.sites, r.LaunchSite)
		}
		t.minPayload = math.Min(t.minPayload, r.PayloadMassKg)
		t.maxPayload = math.Max(t.maxPayload, r.PayloadMassKg)
	}
	return t, nil
}

// parseClass accepts "0"/"1" and their float spellings ("1.0").
func parseClass(s string) (int, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	switch f {
	case 0:
		return 0, nil
	case 1:
		return 1, nil
	}
	return 0, errors.New("class must be 0 or 1")
}

// Len returns the number of records.
func (t *Table) Len() int { return len(t.records) }

// Records returns a copy of all records in file order.
func (t *Table) Records() []Record {
	return append([]Record(nil), t.records...)
}

// Each calls fn for every record in file order without copying the table.
func (t *Table) Each(fn func(Record)) {
	for _, r := range t.records {
		fn(r)
	}
}

// Sites returns the distinct launch sites in order of first appearance.
func (t *Table) Sites() []string {
	return append([]string(nil), t.sites...)
}

// HasSite reports whether site occurs in the table.
func (t *Table) HasSite(site string) bool {
	_, ok := t.siteSet[site]
	return ok
}

// MinPayload is the smallest payload mass in the table.
func (t *Table) MinPayload() float64 { return t.minPayload }

// MaxPayload is the largest payload mass in the table.
func (t *Table) MaxPayload() float64 { return t.maxPayload }
