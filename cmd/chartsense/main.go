// Command chartsense loads a chart from a TOML config and a JSON or XLSX
// dataset, then replays interaction scripts against it, prints a summary,
// or opens it in a window or terminal.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
