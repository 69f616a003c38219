// Package config loads the launchdash configuration from a YAML file.
//
// Config fields:
//   - Server.HTTPPort        — port for the page, REST API and session hub (default 8050)
//   - Server.GRPCPort        — port for the gRPC health service (default 50051, 0 disables)
//   - Server.ShutdownTimeout — grace period for in-flight requests on exit (default 10s)
//   - Dataset.Path           — launch records CSV (default "spacex_launch_dash.csv")
//   - Dataset.Watch          — reload the dataset when the file changes (default false)
//   - Render.Width/Height    — PNG chart size in pixels (default 800x500)
//   - Log.Level              — debug | info | warn | error (default info)
//
// Load(path) applies defaults before unmarshalling, then validates.
// LoadOrDefault(path) treats a missing file as an empty one.
package config
