package dashboard

import (
	"errors"
	"fmt"
	"math"

	"github.com/launchdash/launchdash/internal/launches"
)

// AllSites is the dropdown value selecting every launch site.
const AllSites = "ALL"

var (
	// ErrInvalidSelection matches every error produced by selection validation.
	ErrInvalidSelection = errors.New("invalid selection")

	// ErrUnknownSite is the cause when the site is neither AllSites nor in the table.
	ErrUnknownSite = errors.New("unknown launch site")

	// ErrInvalidRange is the cause when the payload range is inverted or not a number.
	ErrInvalidRange = errors.New("invalid payload range")
)

// InvalidSelectionError describes a control value outside the offered options.
type InvalidSelectionError struct {
	Field string // "site" or "payload"
	Value string
	Err   error
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("invalid selection: %s %s: %v", e.Field, e.Value, e.Err)
}

func (e *InvalidSelectionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidSelection) true for any InvalidSelectionError.
func (e *InvalidSelectionError) Is(target error) bool {
	return target == ErrInvalidSelection
}

// Selection is the state of the page controls for one interaction.
type Selection struct {
	Site string  `json:"site"`
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// DefaultSelection is the selection the page starts with: all sites over the
// table's full payload range.
func DefaultSelection(t *launches.Table) Selection {
	return Selection{Site: AllSites, Low: t.MinPayload(), High: t.MaxPayload()}
}

// Validate checks sel against the options derived from t.
func (sel Selection) Validate(t *launches.Table) error {
	if err := validateSite(t, sel.Site); err != nil {
		return err
	}
	return validateRange(sel.Low, sel.High)
}

func validateSite(t *launches.Table, site string) error {
	if site == AllSites || t.HasSite(site) {
		return nil
	}
	return &InvalidSelectionError{Field: "site", Value: fmt.Sprintf("%q", site), Err: ErrUnknownSite}
}

func validateRange(low, high float64) error {
	if math.IsNaN(low) || math.IsNaN(high) || low > high {
		return &InvalidSelectionError{
			Field: "payload",
			Value: fmt.Sprintf("[%g, %g]", low, high),
			Err:   ErrInvalidRange,
		}
	}
	return nil
}

// Filter returns the rows the scatter view plots for sel: payload mass inside
// [sel.Low, sel.High] inclusive and, unless sel.Site is AllSites, launched
// from sel.Site. Row order is preserved.
func Filter(t *launches.Table, sel Selection) ([]launches.Record, error) {
	if err := sel.Validate(t); err != nil {
		return nil, err
	}
	return filterRecords(t, sel), nil
}

func filterRecords(t *launches.Table, sel Selection) []launches.Record {
	out := make([]launches.Record, 0)
	t.Each(func(r launches.Record) {
		if r.PayloadMassKg < sel.Low || r.PayloadMassKg > sel.High {
			return
		}
		if sel.Site != AllSites && r.LaunchSite != sel.Site {
			return
		}
		out = append(out, r)
	})
	return out
}

// Evaluate runs both reducers for sel.
func Evaluate(t *launches.Table, sel Selection) (Charts, error) {
	pie, err := Pie(t, sel.Site)
	if err != nil {
		return Charts{}, err
	}
	scatter, err := Scatter(t, sel)
	if err != nil {
		return Charts{}, err
	}
	return Charts{Pie: pie, Scatter: scatter}, nil
}
