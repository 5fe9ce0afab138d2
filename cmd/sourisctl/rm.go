package main

import (
	"context"

	"github.com/BurntNail/sourisdb/httpapi"
	"github.com/spf13/cobra"
)

func newRmCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <db> <key>",
		Short: "Remove one key from a database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := httpapi.NewClient(*addr)
			return client.RemoveKey(context.Background(), args[0], args[1])
		},
	}
}
