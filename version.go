package automata

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the module release, read from the VERSION file.
var Version = strings.TrimSpace(version)
