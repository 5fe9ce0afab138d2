package main

import (
	"context"

	"github.com/BurntNail/sourisdb/httpapi"
	"github.com/spf13/cobra"
)

func newAddDBCmd(addr *string) *cobra.Command {
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "add-db <name>",
		Short: "Create a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := httpapi.NewClient(*addr)
			_, err := client.AddDB(context.Background(), args[0], overwrite)
			return err
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace the database if it already exists")
	return cmd
}
