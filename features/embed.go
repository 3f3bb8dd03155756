// Package features embeds the Gherkin feature files of the suite.
package features

import "embed"

// FS holds every *.feature file in this directory.
//
//go:embed *.feature
var FS embed.FS
