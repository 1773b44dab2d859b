package main

import (
	"fmt"

	"github.com/rocjay1/fam/internal/cli"
	"github.com/spf13/cobra"
)

var policiesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List the user types and their thresholds",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), cli.RenderPolicies())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(policiesCmd)
}
