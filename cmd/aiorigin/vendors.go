package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"xdao.co/aiorigin/origin"
)

func newVendorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "Print the vendor table in match order",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range origin.Vendors() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v.Name, strings.Join(v.Keywords, ","))
			}
			return nil
		},
	}
}
