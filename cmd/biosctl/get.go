package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sigreer/biosctl/internal/report"
)

var getCmd = &cobra.Command{
	Use:   "get SETTING",
	Short: "Print the current value of a setting",
	Long: `Print the current value of a setting.

Values the firmware refuses to disclose are shown as <Access Denied>.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().BoolP("default", "d", false, "Print the default value instead")
	getCmd.Flags().BoolP("name", "n", false, "Print the display name instead")
	getCmd.MarkFlagsMutuallyExclusive("default", "name")
}

func runGet(cmd *cobra.Command, args []string) error {
	showDefault, _ := cmd.Flags().GetBool("default")
	showName, _ := cmd.Flags().GetBool("name")

	dev := device()
	log.Trace().
		Str("device", dev.Name()).
		Str("attribute", args[0]).
		Bool("default", showDefault).
		Bool("name", showName).
		Msg("printing content of attribute")

	attr, err := dev.Attribute(args[0])
	if err != nil {
		return err
	}

	switch {
	case showDefault:
		fmt.Println(report.ValueText(attr.Default))
	case showName:
		fmt.Println(attr.DisplayName)
	default:
		fmt.Println(report.ValueText(attr.Current))
	}

	return nil
}
