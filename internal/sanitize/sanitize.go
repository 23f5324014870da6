// Package sanitize is the boundary between raw user text and anything that
// renders it. Stored values keep whatever the user typed; projections call
// Clean before display.
package sanitize

import "github.com/microcosm-cc/bluemonday"

var policy = bluemonday.StrictPolicy()

// Clean strips all HTML elements from s and neutralizes unsafe characters.
func Clean(s string) string {
	return policy.Sanitize(s)
}
