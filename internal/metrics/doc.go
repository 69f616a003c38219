// Package metrics holds the Prometheus registry for launchdash and serves it
// in the text exposition format.
//
// Series:
//
//	launchdash_http_requests_total{route,code}
//	launchdash_reducer_invocations_total{view,outcome}   view: pie|scatter, outcome: ok|invalid|error
//	launchdash_dataset_reloads_total{result}             result: ok|error
//	launchdash_dataset_rows
//	launchdash_session_clients
//
// All methods are safe on a nil *Metrics, which records nothing.
package metrics
