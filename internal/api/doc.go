// Package api implements the HTTP REST API for launchdash.
//
// New(store, renderOpts, metrics) returns an http.Handler that serves:
//
//	GET /api/v1/health                — dataset row/site counts, payload bounds, load time
//	GET /api/v1/controls              — dropdown options and slider bounds/defaults
//	GET /api/v1/charts/pie            — pie spec for ?site= (default ALL)
//	GET /api/v1/charts/scatter        — scatter spec for ?site=&low=&high=
//	GET /api/v1/charts/pie.png        — the pie rendered as PNG (?width=&height=)
//	GET /api/v1/charts/scatter.png    — the scatter rendered as PNG
//	GET /api/v1/launches              — rows matching ?site=&low=&high=
//
// low and high default to the dataset's payload bounds. A site outside the
// dropdown options, an unparseable bound or low > high is a 400. A selection
// matching no rows is a 200 with an empty spec.
//
// All endpoints:
//   - Respond with Content-Type: application/json (PNG endpoints: image/png)
//   - Return 405 for non-GET methods
//   - Read the table current at request time from the store
//
// JSON types are defined in types.go. No external HTTP framework is used.
package api
