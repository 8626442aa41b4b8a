package cmd

import "fmt"

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Print version information",
		Long:  `Print the snapshot CLI version and build time.`,
		Usage: "snapshot version",
		Run:   runVersion,
	})
}

func runVersion(args []string) error {
	fmt.Printf("snapshot version %s (built %s)\n", Version, BuildTime)
	return nil
}
