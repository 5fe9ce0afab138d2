package main

import (
	"context"

	"github.com/BurntNail/sourisdb/httpapi"
	"github.com/spf13/cobra"
)

func newRmDBCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "rm-db <name>",
		Short: "Remove a database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := httpapi.NewClient(*addr)
			return client.RemoveDB(context.Background(), args[0])
		},
	}
}
