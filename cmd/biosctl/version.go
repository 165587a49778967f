package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sigreer/biosctl/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	// no configuration or logging needed
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		long, _ := cmd.Flags().GetBool("long")
		if long {
			fmt.Println(version.Long())
			return
		}
		fmt.Printf("biosctl %s\n", version.Version)
	},
}

func init() {
	versionCmd.Flags().Bool("long", false, "Include build revision and Go version")
}
