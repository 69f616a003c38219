// Package ws implements the interactive session hub for launchdash.
//
// Each browser tab holds one WebSocket connection to the hub, mounted at
// /ws/session. The hub plays the part of the reactive callback dispatcher:
// every selection a client sends is run through both reducers against the
// table current at that moment, and the resulting chart specs are sent back.
// Messages from one client are handled strictly in the order received.
//
// Server → client messages:
//
//	{"event": "controls", "data": { /* same schema as GET /api/v1/controls */ }}
//	{"event": "charts",   "data": {"pie": {...}, "scatter": {...}}}
//	{"event": "error",    "data": {"error": "invalid selection: ..."}}
//
// Client → server message:
//
//	{"site": "ALL", "payload": [0, 10000]}
//
// A missing site means "ALL"; a missing payload means the dataset's full
// range. On connect the client receives controls and the charts for the
// default selection. After the store reloads the dataset, every client
// receives fresh controls and default charts. A page whose controls hold a
// different selection re-sends it; the reply is queued behind the default
// charts, so the last charts a client receives match its controls.
//
// The upgrader accepts all origins. Apply CORS restrictions at the reverse
// proxy level.
package ws
