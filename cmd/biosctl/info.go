package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sigreer/biosctl/internal/report"
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show a device summary and its authentication methods",
	Args:  cobra.NoArgs,
	RunE:  runInfo,
}

var needsRebootCmd = &cobra.Command{
	Use:   "needs-reboot",
	Short: "Print whether staged changes are waiting for a reboot",
	Long: `Print "true" and exit 0 when the firmware has changes pending a reboot,
otherwise print "false" and exit 1.`,
	Args: cobra.NoArgs,
	RunE: runNeedsReboot,
}

func init() {
	infoCmd.Flags().Bool("json", false, "Output as JSON")
}

func runInfo(cmd *cobra.Command, args []string) error {
	jsonOut, _ := cmd.Flags().GetBool("json")
	dev := device()
	log.Trace().Str("device", dev.Name()).Msg("printing info for device")

	attrs, err := dev.ScanAttributes()
	if err != nil {
		return err
	}

	modified, err := dev.Modified()
	if err != nil {
		return err
	}

	auths, err := dev.Authentications()
	if err != nil {
		return err
	}
	if len(auths) == 0 {
		log.Warn().Str("device", dev.Name()).Msg("no authentication methods found for device")
	}

	if jsonOut {
		return report.WriteJSON(os.Stdout, struct {
			Device          string                      `json:"device"`
			Attributes      int                         `json:"attributes"`
			Skipped         int                         `json:"skipped"`
			PendingReboot   bool                        `json:"pending_reboot"`
			Authentications []report.AuthenticationView `json:"authentications"`
		}{
			Device:          dev.Name(),
			Attributes:      len(attrs.Items),
			Skipped:         attrs.SkippedCount(),
			PendingReboot:   modified,
			Authentications: report.NewAuthenticationViews(auths),
		})
	}

	return report.WriteInfo(os.Stdout, report.Info{
		Device:          dev.Name(),
		Attributes:      len(attrs.Items),
		Skipped:         attrs.SkippedCount(),
		Modified:        modified,
		Authentications: auths,
	})
}

func runNeedsReboot(cmd *cobra.Command, args []string) error {
	modified, err := device().Modified()
	if err != nil {
		return err
	}

	if !modified {
		fmt.Println("false")
		return &exitError{code: 1}
	}

	fmt.Println("true")
	return nil
}
