// Command sourisctl is a CLI client for a souris daemon's HTTP surface.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var addr string

	root := &cobra.Command{
		Use:          "sourisctl",
		Short:        "Command-line client for a souris daemon",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&addr, "addr", "http://127.0.0.1:2256", "daemon base URL")

	root.AddCommand(
		newDBsCmd(&addr),
		newGetCmd(&addr),
		newPutCmd(&addr),
		newRmCmd(&addr),
		newAddDBCmd(&addr),
		newRmDBCmd(&addr),
		newHealthcheckCmd(&addr),
	)

	return root
}
