package main

import (
	"context"
	"fmt"

	"github.com/BurntNail/sourisdb/httpapi"
	"github.com/spf13/cobra"
)

func newGetCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <db> <key>",
		Short: "Fetch one value from a database",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := httpapi.NewClient(*addr)

			v, err := client.GetValue(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), valueToDisplayString(v))
			return nil
		},
	}
}
