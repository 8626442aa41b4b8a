// Command snapshot renders yaml-described scenes to PNG files off-screen.
package main

import (
	"os"

	"github.com/go-drift/snapshot/cmd/snapshot/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
