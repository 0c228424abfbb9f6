// Package web holds the page templates and static assets served by the handlers.
package web

import "embed"

//go:embed static
var Static embed.FS

//go:embed templates
var Templates embed.FS
