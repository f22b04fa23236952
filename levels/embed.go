// Package levels contains the bundled level files
package levels

import "embed"

// Default is the level used when none is given on the command line
const Default = "crossroads.yaml"

//go:embed *.yaml
var FS embed.FS
