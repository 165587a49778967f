package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/sigreer/biosctl/internal/config"
	"github.com/sigreer/biosctl/internal/firmware"
	"github.com/sigreer/biosctl/internal/logging"
	"github.com/sigreer/biosctl/internal/version"
)

var (
	cfgFile    string
	deviceName string
	rootPath   string
	authName   string
	password   string
	verbose    int
	quiet      int

	cfg *config.Config

	// logOutput receives all log lines
	logOutput io.Writer = os.Stderr
)

// exitError ends the process with code without printing anything.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

var rootCmd = &cobra.Command{
	Use:   "biosctl",
	Short: "Manage BIOS/EFI settings",
	Long: `biosctl reads and changes the firmware settings Linux exposes under
/sys/class/firmware-attributes (dell-wmi-sysman, thinklmi, hp-bioscfg, ...).

Changes made with 'set' are staged by the firmware and applied on the next
reboot; 'needs-reboot' reports whether such changes are pending.`,
	Version:       version.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.Help()
		return &exitError{code: 1}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is /etc/biosctl/config.yaml)")
	flags.StringVarP(&deviceName, "device-name", "D", firmware.DefaultDevice, "firmware attributes device")
	flags.StringVar(&rootPath, "root", "", "firmware attributes root (default is "+firmware.DefaultRoot+")")
	flags.CountVarP(&verbose, "verbose", "v", "more log output, repeat for more")
	flags.CountVarP(&quiet, "quiet", "q", "less log output, repeat for less")
	flags.StringVar(&password, "password", "", "BIOS admin password for authentication")
	flags.StringVar(&authName, "auth", "", "password slot the admin password is written to (default is Admin)")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	rootCmd.Flags().BoolP("version", "V", false, "Prints version information")
	rootCmd.SetVersionTemplate("biosctl {{.Version}}\n")

	rootCmd.AddCommand(printCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(needsRebootCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup loads the configuration, lets flags override it, and configures
// logging.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		level, _ := logging.ResolveLevel("", verbose, quiet)
		logging.Setup(logOutput, level)
		return err
	}

	level, levelErr := logging.ResolveLevel(loaded.LogLevel, verbose, quiet)
	logging.Setup(logOutput, level)
	if levelErr != nil {
		log.Warn().Err(levelErr).Msg("using default log level")
	}

	if cmd.Flags().Changed("device-name") {
		loaded.Device = deviceName
	}
	if rootPath != "" {
		loaded.Root = rootPath
	}
	if authName != "" {
		loaded.Authentication = authName
	}

	if password != "" && cmd.Name() != setCmd.Name() {
		log.Warn().Str("command", cmd.Name()).Msg("--password is only used by set, ignoring it")
	}

	log.Trace().
		Str("device", loaded.Device).
		Str("root", loaded.Root).
		Int("workers", loaded.Workers).
		Msg("configuration loaded")

	cfg = loaded
	return nil
}

func device() *firmware.Device {
	return cfg.FirmwareDevice()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		logging.LogCauses(err)
		os.Exit(1)
	}
}
