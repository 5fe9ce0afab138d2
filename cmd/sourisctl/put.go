package main

import (
	"context"

	"github.com/BurntNail/sourisdb/httpapi"
	"github.com/spf13/cobra"
)

func newPutCmd(addr *string) *cobra.Command {
	var valueType string

	cmd := &cobra.Command{
		Use:   "put <db> <key> <value>",
		Short: "Insert or overwrite one value in a database",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseValue(valueType, args[2])
			if err != nil {
				return err
			}

			client := httpapi.NewClient(*addr)
			_, err = client.AddKV(context.Background(), args[0], args[1], v)
			return err
		},
	}

	cmd.Flags().StringVar(&valueType, "type", "string", "value type: string, int, float, bool, or null")
	return cmd
}
