// Command sevenguis runs the 7GUIs tasks from the terminal.
//
// The circle drawer is driven by YAML scripts and can journal its sessions to PostgreSQL,
// so a session can be continued or inspected later with "circles show".
package main

import (
	"os"
)

func main() {
	if err := newRootCommand(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
