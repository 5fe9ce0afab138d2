package main

import (
	"context"
	"fmt"

	"github.com/BurntNail/sourisdb/httpapi"
	"github.com/spf13/cobra"
)

func newHealthcheckCmd(addr *string) *cobra.Command {
	return &cobra.Command{
		Use:   "healthcheck",
		Short: "Check whether the daemon is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := httpapi.NewClient(*addr)
			if err := client.HealthCheck(context.Background()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}
}
