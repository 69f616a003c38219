// Package render rasterises dashboard chart specs to PNG with go-chart.
//
// PNG(w, spec, opts) dispatches on spec.Kind. Pie slices with a zero value
// are omitted because go-chart cannot draw them; a spec with nothing left to
// draw (Empty, or a pie whose slices are all zero) renders as a blank canvas
// carrying the title and a "No data for this selection" note.
package render
