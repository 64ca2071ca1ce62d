// Package static holds files embedded into the binary.
package static

import _ "embed"

// DashboardHTML is the html/template source of the dashboard page.
//
//go:embed dashboard.html
var DashboardHTML string
