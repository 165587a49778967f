package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sigreer/biosctl/internal/db"
	"github.com/sigreer/biosctl/internal/firmware"
	"github.com/sigreer/biosctl/internal/report"
	"github.com/sigreer/biosctl/internal/session"
)

var setCmd = &cobra.Command{
	Use:   "set SETTING VALUE",
	Short: "Change the value of a setting",
	Long: `Write VALUE to a setting and print the value the firmware reports back.

VALUE is written exactly as given; the firmware decides whether it is
acceptable. Protected settings need --password. Changes usually take
effect on the next reboot.`,
	Args: cobra.ExactArgs(2),
	RunE: runSet,
}

// runID groups the history rows of this invocation
var runID = db.NewRunID()

func runSet(cmd *cobra.Command, args []string) (err error) {
	name, value := args[0], args[1]
	dev := device()

	attr, err := dev.Attribute(name)
	if err != nil {
		return err
	}
	previous := attr.Current

	if password != "" {
		sess, unlockErr := session.Unlock(dev, cfg.Authentication, password)
		if unlockErr != nil {
			return fmt.Errorf("failed to unlock BIOS: %w", unlockErr)
		}
		fmt.Println("BIOS unlocked for changes.")

		defer func() {
			if closeErr := sess.Close(); closeErr != nil {
				if err == nil {
					err = fmt.Errorf("failed to clear BIOS password: %w", closeErr)
				} else {
					log.Error().Err(closeErr).Msg("failed to clear BIOS password")
				}
				return
			}
			fmt.Println("BIOS password cleared.")
		}()
	}

	if err := attr.SetValue(value); err != nil {
		return err
	}

	recordChange(dev, attr, previous, value)

	if !attr.Current.OK() {
		log.Warn().Err(attr.Current.Err).Str("attribute", name).Msg("value written but could not be read back")
	}
	fmt.Printf("%s: %s\n", name, report.ValueText(attr.Current))

	return nil
}

// recordChange appends the change to the history database. A history
// failure never fails the change itself.
func recordChange(dev *firmware.Device, attr *firmware.Attribute, previous firmware.Value, requested string) {
	if !cfg.History.Enabled {
		return
	}

	database, err := db.New(cfg.History.Path)
	if err != nil {
		log.Warn().Err(err).Str("path", cfg.History.Path).Msg("change not recorded")
		return
	}
	defer database.Close()

	change := &db.Change{
		RunID:     runID,
		Device:    dev.Name(),
		Attribute: attr.Name,
		Previous:  valuePtr(previous),
		Requested: requested,
		Resulting: valuePtr(attr.Current),
	}
	if err := database.RecordChange(change); err != nil {
		log.Warn().Err(err).Msg("change not recorded")
		return
	}

	log.Debug().Int64("id", change.ID).Str("run", runID).Msg("change recorded")
}

func valuePtr(v firmware.Value) *string {
	if !v.OK() {
		return nil
	}
	text := v.Text
	return &text
}
