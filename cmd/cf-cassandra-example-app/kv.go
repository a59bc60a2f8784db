package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newKVCmds(a *app) []*cobra.Command {
	return []*cobra.Command{
		{
			Use:   "store [table] [key] [value]",
			Short: "Stores a value under a key, overwriting any previous value",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.client.Store(cmd.Context(), args[0], args[1], args[2]); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "stored successfully")

				return nil
			},
		},
		{
			Use:   "fetch [table] [key]",
			Short: "Prints the value stored under a key",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := a.client.Fetch(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), value)

				return nil
			},
		},
		{
			Use:   "create-table [table]",
			Short: "Creates a key-value table if it does not exist",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.client.CreateTable(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "table %s.%s is ready\n", a.client.Keyspace(), args[0])

				return nil
			},
		},
		{
			Use:   "drop-table [table]",
			Short: "Drops a table if it exists",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.client.DropTable(cmd.Context(), args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "table %s.%s dropped\n", a.client.Keyspace(), args[0])

				return nil
			},
		},
	}
}
