package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print the current version",
		Annotations: map[string]string{skipStore: "true"},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(out(cmd), "adaptly", version)
		},
	}
}
