// Package dashboard turns the launch table and the user's current control
// values into chart specifications.
//
// The two reducers are pure functions of (table, selection):
//
//	Pie(table, site)          — "ALL": successes summed per launch site;
//	                            one site: launch count per outcome class
//	Scatter(table, selection) — payload mass vs. outcome for rows inside the
//	                            inclusive payload range, optionally one site,
//	                            one series per booster version category
//
// Evaluate runs both for a Selection. Controls describes the dropdown and
// range slider the page offers, seeded from the table's sites and payload
// bounds.
//
// A site outside {"ALL"} ∪ table.Sites() and an inverted or NaN payload range
// are rejected with an *InvalidSelectionError (errors.Is ErrInvalidSelection).
// A selection that matches no rows is not an error: the reducer returns a
// spec with Empty set and no data.
//
// Nothing in this package retains state between calls or modifies the table.
package dashboard
