package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sigreer/biosctl/internal/firmware"
	"github.com/sigreer/biosctl/internal/report"
)

var printCmd = &cobra.Command{
	Use:   "print [SETTING]",
	Short: "Print every setting, or one setting, with its type and values",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runPrint,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List setting names",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	printCmd.Flags().Bool("json", false, "Output as JSON")
	listCmd.Flags().Bool("json", false, "Output as JSON")
}

func runPrint(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	dev := device()
	log.Trace().Str("device", dev.Name()).Msg("printing device")

	var attrs []firmware.Attribute
	if len(args) == 1 {
		log.Trace().Str("attribute", args[0]).Msg("filtering by attribute")
		attr, err := dev.Attribute(args[0])
		if err != nil {
			return err
		}
		attrs = []firmware.Attribute{*attr}
	} else {
		all, err := dev.Attributes()
		if err != nil {
			return err
		}
		attrs = all
	}

	if jsonOut {
		return report.WriteJSON(os.Stdout, report.NewAttributeViews(attrs))
	}
	return report.WriteDevice(os.Stdout, dev.Name(), attrs)
}

func runList(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	dev := device()
	log.Trace().Str("device", dev.Name()).Msg("listing attributes")

	attrs, err := dev.Attributes()
	if err != nil {
		return err
	}

	if jsonOut {
		names := make([]string, 0, len(attrs))
		for _, a := range attrs {
			names = append(names, a.Name)
		}
		return report.WriteJSON(os.Stdout, names)
	}

	report.WriteList(os.Stdout, dev.Name(), attrs)
	return nil
}
