package main

import (
	"context"
	"fmt"

	"github.com/BurntNail/sourisdb/httpapi"
	"github.com/spf13/cobra"
)

func newDBsCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "dbs",
		Short: "List every database known to the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := httpapi.NewClient(*addr)

			names, err := client.GetAllDBNames(context.Background())
			if err != nil {
				return err
			}

			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
}
