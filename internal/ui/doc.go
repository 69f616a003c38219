// Package ui serves the dashboard page.
//
// GET / renders an html/template page containing the title heading, the
// launch site dropdown, the payload range slider and two chart containers.
// The dropdown options and slider defaults are taken from the table current
// at request time, so the page works without script for inspection.
//
// static/dashboard.js opens a WebSocket to /ws/session, forwards every
// control change as a selection message and draws each chart spec it gets
// back with Plotly. Assets are embedded in the binary and served under
// /static/.
package ui
