package launches

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const header = "Launch Site,Payload Mass (kg),class,Booster Version Category\n"

func TestLoad_Testdata(t *testing.T) {
	tbl, err := Load(filepath.Join("testdata", "launches.csv"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tbl.Len() != 12 {
		t.Errorf("Len: got %d, want 12", tbl.Len())
	}
	wantSites := []string{"CCAFS LC-40", "VAFB SLC-4E", "KSC LC-39A", "CCAFS SLC-40"}
	if diff := cmp.Diff(wantSites, tbl.Sites()); diff != "" {
		t.Errorf("Sites mismatch (-want +got):\n%s", diff)
	}
	if tbl.MinPayload() != 0 {
		t.Errorf("MinPayload: got %v, want 0", tbl.MinPayload())
	}
	if tbl.MaxPayload() != 9600 {
		t.Errorf("MaxPayload: got %v, want 9600", tbl.MaxPayload())
	}

	first := tbl.Records()[0]
	want := Record{
		FlightNumber:           1,
		LaunchSite:             "CCAFS LC-40",
		PayloadMassKg:          0,
		Class:                  0,
		BoosterVersion:         "F9 v1.0  B0003",
		BoosterVersionCategory: "v1.0",
	}
	if diff := cmp.Diff(want, first); diff != "" {
		t.Errorf("first record mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/spacex_launch_dash.csv")
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestParse_MinimalColumns(t *testing.T) {
	tbl, err := Parse(strings.NewReader(header +
		"SiteA,500,1,v1.0\n" +
		"SiteA,1500,0,v1.0\n" +
		"SiteB,2500,1,v1.1\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tbl.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", tbl.Len())
	}
	if tbl.MinPayload() != 500 || tbl.MaxPayload() != 2500 {
		t.Errorf("bounds: got [%v, %v], want [500, 2500]", tbl.MinPayload(), tbl.MaxPayload())
	}
	if !tbl.HasSite("SiteB") {
		t.Error("HasSite(SiteB): got false, want true")
	}
	if tbl.HasSite("SiteC") {
		t.Error("HasSite(SiteC): got true, want false")
	}
	if r := tbl.Records()[1]; r.FlightNumber != 0 || r.BoosterVersion != "" {
		t.Errorf("optional fields should be zero when columns are absent, got %+v", r)
	}
}

func TestParse_ColumnOrderAndWhitespace(t *testing.T) {
	tbl, err := Parse(strings.NewReader(
		" class , Booster Version Category ,Launch Site, Payload Mass (kg)\n" +
			"1.0, FT ,KSC LC-39A, 2490.0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	want := Record{LaunchSite: "KSC LC-39A", PayloadMassKg: 2490, Class: 1, BoosterVersionCategory: "FT"}
	if diff := cmp.Diff(want, tbl.Records()[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
		wantCol string
	}{
		{
			name:    "empty input",
			input:   "",
			wantErr: ErrEmptyTable,
		},
		{
			name:    "header only",
			input:   header,
			wantErr: ErrEmptyTable,
		},
		{
			name:    "missing class column",
			input:   "Launch Site,Payload Mass (kg),Booster Version Category\nA,1,v1.0\n",
			wantErr: ErrMissingColumn,
		},
		{
			name:    "non-numeric payload",
			input:   header + "A,heavy,1,v1.0\n",
			wantCol: ColPayloadMass,
		},
		{
			name:    "NaN payload",
			input:   header + "A,NaN,1,v1.0\n",
			wantCol: ColPayloadMass,
		},
		{
			name:    "class out of range",
			input:   header + "A,100,2,v1.0\n",
			wantCol: ColClass,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.input))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error: got %v, want %v", err, tc.wantErr)
			}
			if tc.wantCol != "" {
				var pe *ParseError
				if !errors.As(err, &pe) {
					t.Fatalf("error: got %T (%v), want *ParseError", err, err)
				}
				if pe.Column != tc.wantCol {
					t.Errorf("ParseError.Column: got %q, want %q", pe.Column, tc.wantCol)
				}
				if pe.Line != 2 {
					t.Errorf("ParseError.Line: got %d, want 2", pe.Line)
				}
			}
		})
	}
}

func TestRecords_ReturnsCopy(t *testing.T) {
	tbl, err := Parse(strings.NewReader(header + "A,100,1,v1.0\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	recs := tbl.Records()
	recs[0].LaunchSite = "mutated"

	if got := tbl.Records()[0].LaunchSite; got != "A" {
		t.Errorf("table was mutated through Records(): LaunchSite = %q", got)
	}
	sites := tbl.Sites()
	sites[0] = "mutated"
	if got := tbl.Sites()[0]; got != "A" {
		t.Errorf("table was mutated through Sites(): %q", got)
	}
}

func TestNew_CopiesInput(t *testing.T) {
	in := []Record{{LaunchSite: "A", PayloadMassKg: 10, Class: 1, BoosterVersionCategory: "FT"}}
	tbl, err := New(in)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	in[0].PayloadMassKg = 999
	if tbl.MaxPayload() != 10 || tbl.Records()[0].PayloadMassKg != 10 {
		t.Error("table should not observe changes to the input slice")
	}

	if _, err := New(nil); !errors.Is(err, ErrEmptyTable) {
		t.Errorf("New(nil): got %v, want ErrEmptyTable", err)
	}
}
